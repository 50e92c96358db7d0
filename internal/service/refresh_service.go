package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"iomd-notebook-be/internal/dto"
	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/pkg/logger"
	"iomd-notebook-be/internal/repository/specification"
	"iomd-notebook-be/internal/repository/unitofwork"
	"iomd-notebook-be/pkg/events"
	pkgnats "iomd-notebook-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IRefreshService executes file-source refreshes requested on the bus. The
// scheduler that decides when to request them is an external collaborator;
// this service is only the job body, and it is the sole writer of the
// file_update_operations log.
type IRefreshService interface {
	Consume(ctx context.Context) error
}

type refreshService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	natsPub     *pkgnats.Publisher
	client      *http.Client
	maxFileSize int
	log         logger.ILogger
}

func NewRefreshService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	natsPub *pkgnats.Publisher,
	maxFileSize int,
	log logger.ILogger,
) IRefreshService {
	return &refreshService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		natsPub:     natsPub,
		client:      &http.Client{Timeout: 30 * time.Second},
		maxFileSize: maxFileSize,
		log:         log,
	}
}

func (s *refreshService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *refreshService) processMessage(ctx context.Context, msg *message.Message) {
	// Malformed messages are acked: retrying cannot fix them.
	var payload dto.RefreshRequestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("refresh", "failed to unmarshal refresh request", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	if err := s.execute(ctx, payload.FileSourceId); err != nil {
		s.log.Error("refresh", "file source refresh failed", map[string]interface{}{
			"file_source_id": payload.FileSourceId,
			"error":          err.Error(),
		})
	}
	msg.Ack()
}

func (s *refreshService) execute(ctx context.Context, sourceId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	src, err := uow.FileSourceRepository().FindOne(ctx, specification.ByID{ID: sourceId})
	if err != nil {
		return err
	}
	if src == nil {
		return fmt.Errorf("file source %d no longer exists", sourceId)
	}

	op := entity.FileUpdateOperation{
		FileSourceId: src.Id,
		Started:      time.Now(),
		Status:       entity.OperationPending,
	}
	if err := uow.FileUpdateOperationRepository().Create(ctx, &op); err != nil {
		return err
	}
	s.announce(ctx, &op)

	if err := s.advance(ctx, uow, &op, entity.OperationRunning); err != nil {
		return err
	}

	content, fetchErr := s.fetch(ctx, src.URL)
	if fetchErr != nil {
		if err := s.advance(ctx, uow, &op, entity.OperationFailed); err != nil {
			return err
		}
		return fetchErr
	}

	if err := s.replaceFile(ctx, uow, src, content); err != nil {
		if advErr := s.advance(ctx, uow, &op, entity.OperationFailed); advErr != nil {
			return advErr
		}
		return err
	}

	return s.advance(ctx, uow, &op, entity.OperationCompleted)
}

// advance moves an operation forward. Transitions are monotonic: an
// operation never returns to an earlier status.
func (s *refreshService) advance(ctx context.Context, uow unitofwork.UnitOfWork, op *entity.FileUpdateOperation, next entity.OperationStatus) error {
	if !op.Status.CanAdvanceTo(next) {
		return fmt.Errorf("operation %d cannot move from %s to %s", op.Id, op.Status, next)
	}
	op.Status = next
	if err := uow.FileUpdateOperationRepository().Update(ctx, op); err != nil {
		return err
	}
	s.announce(ctx, op)
	return nil
}

func (s *refreshService) announce(ctx context.Context, op *entity.FileUpdateOperation) {
	event := events.OperationStatusChanged(op.Id, op.FileSourceId, string(op.Status))
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.log.Warn("refresh", "failed to publish status event", map[string]interface{}{
			"operation_id": op.Id,
			"error":        err.Error(),
		})
	}
}

func (s *refreshService) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source responded with status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, int64(s.maxFileSize)+1))
	if err != nil {
		return nil, err
	}
	if len(content) > s.maxFileSize {
		return nil, fmt.Errorf("source content exceeds the maximum file size of %d", s.maxFileSize)
	}
	return content, nil
}

func (s *refreshService) replaceFile(ctx context.Context, uow unitofwork.UnitOfWork, src *entity.FileSource, content []byte) error {
	file, err := uow.FileRepository().FindOne(ctx,
		specification.ByNotebookID{NotebookID: src.NotebookId},
		specification.ByFilename{Filename: src.Filename},
		specification.RecentlyUpdatedFirst{},
	)
	if err != nil {
		return err
	}

	if file == nil {
		file = &entity.File{
			NotebookId:  src.NotebookId,
			Filename:    src.Filename,
			Content:     content,
			LastUpdated: time.Now(),
		}
		return uow.FileRepository().Create(ctx, file)
	}

	file.Content = content
	file.LastUpdated = time.Now()
	return uow.FileRepository().Update(ctx, file)
}

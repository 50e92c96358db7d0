package service

import (
	"context"
	"encoding/json"

	"iomd-notebook-be/internal/config"
	"iomd-notebook-be/internal/dto"
	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/pkg/serverutils"
	"iomd-notebook-be/internal/repository/specification"
	"iomd-notebook-be/internal/repository/unitofwork"
)

type IFileSourceService interface {
	List(ctx context.Context, requester *entity.User, notebookId int64) ([]dto.FileSourceResponse, error)
	Create(ctx context.Context, requester *entity.User, req *dto.CreateFileSourceRequest) (*dto.FileSourceResponse, error)
	Delete(ctx context.Context, requester *entity.User, sourceId int64) error
	RequestRefresh(ctx context.Context, requester *entity.User, sourceId int64) error
}

type fileSourceService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	limits           config.LimitsConfig
}

func NewFileSourceService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	limits config.LimitsConfig,
) IFileSourceService {
	return &fileSourceService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		limits:           limits,
	}
}

// List hides sources from everyone but the owner by returning an empty
// slice rather than an error. This is the one deliberate spot where an
// authorization failure degrades silently; every write path hard-fails.
func (s *fileSourceService) List(ctx context.Context, requester *entity.User, notebookId int64) ([]dto.FileSourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NewNotFound("notebook", "id=%d", notebookId)
	}
	if !notebook.CanEdit(requester) {
		return []dto.FileSourceResponse{}, nil
	}

	sources, err := uow.FileSourceRepository().FindAll(ctx, specification.ByNotebookID{NotebookID: notebookId})
	if err != nil {
		return nil, err
	}

	result := make([]dto.FileSourceResponse, 0, len(sources))
	for _, src := range sources {
		res, err := s.enrich(ctx, uow, src)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	return result, nil
}

func (s *fileSourceService) enrich(ctx context.Context, uow unitofwork.UnitOfWork, src *entity.FileSource) (*dto.FileSourceResponse, error) {
	intervalLabel, err := entity.IntervalLabel(src.UpdateInterval)
	if err != nil {
		return nil, err
	}

	res := dto.FileSourceResponse{
		Id:             src.Id,
		NotebookId:     src.NotebookId,
		Filename:       src.Filename,
		URL:            src.URL,
		UpdateInterval: intervalLabel,
	}

	latest, err := uow.FileUpdateOperationRepository().FindOne(ctx,
		specification.ByFileSourceID{FileSourceID: src.Id},
		specification.RecentlyStartedFirst{},
	)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		statusLabel, err := latest.Status.Label()
		if err != nil {
			return nil, err
		}
		res.LatestOperation = &dto.OperationSummary{
			Id:      latest.Id,
			Started: latest.Started,
			Status:  statusLabel,
		}
	}
	return &res, nil
}

func (s *fileSourceService) Create(ctx context.Context, requester *entity.User, req *dto.CreateFileSourceRequest) (*dto.FileSourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: req.NotebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NewNotFound("notebook", "id=%d", req.NotebookId)
	}
	if !notebook.CanEdit(requester) {
		return nil, serverutils.NewPermissionDenied("notebook %d is not owned by the requester", req.NotebookId)
	}

	if len(req.URL) > s.limits.MaxFileSourceURLLength {
		return nil, serverutils.NewValidation("source url exceeds the maximum length of %d", s.limits.MaxFileSourceURLLength)
	}
	if len(req.Filename) > s.limits.MaxFilenameLength {
		return nil, serverutils.NewValidation("filename %q exceeds the maximum length of %d", req.Filename, s.limits.MaxFilenameLength)
	}
	interval, err := entity.ParseIntervalLabel(req.UpdateInterval)
	if err != nil {
		return nil, err
	}

	src := entity.FileSource{
		NotebookId:     req.NotebookId,
		Filename:       req.Filename,
		URL:            req.URL,
		UpdateInterval: interval,
	}
	if err := uow.FileSourceRepository().Create(ctx, &src); err != nil {
		return nil, err
	}

	return s.enrich(ctx, uow, &src)
}

func (s *fileSourceService) Delete(ctx context.Context, requester *entity.User, sourceId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	src, notebook, err := s.resolve(ctx, uow, sourceId)
	if err != nil {
		return err
	}
	if !notebook.CanEdit(requester) {
		return serverutils.NewPermissionDenied("file source %d is not owned by the requester", sourceId)
	}

	return uow.FileSourceRepository().Delete(ctx, src.Id)
}

// RequestRefresh puts a refresh request on the bus. The refresh consumer
// picks it up and runs the actual fetch.
func (s *fileSourceService) RequestRefresh(ctx context.Context, requester *entity.User, sourceId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	src, notebook, err := s.resolve(ctx, uow, sourceId)
	if err != nil {
		return err
	}
	if !notebook.CanEdit(requester) {
		return serverutils.NewPermissionDenied("file source %d is not owned by the requester", sourceId)
	}

	payload, err := json.Marshal(dto.RefreshRequestedMessage{FileSourceId: src.Id})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

func (s *fileSourceService) resolve(ctx context.Context, uow unitofwork.UnitOfWork, sourceId int64) (*entity.FileSource, *entity.Notebook, error) {
	src, err := uow.FileSourceRepository().FindOne(ctx, specification.ByID{ID: sourceId})
	if err != nil {
		return nil, nil, err
	}
	if src == nil {
		return nil, nil, serverutils.NewNotFound("file source", "id=%d", sourceId)
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: src.NotebookId})
	if err != nil {
		return nil, nil, err
	}
	if notebook == nil {
		return nil, nil, serverutils.NewCorruptState("file source %d references missing notebook %d", src.Id, src.NotebookId)
	}
	return src, notebook, nil
}

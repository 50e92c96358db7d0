package service

import (
	"context"
	"strings"
	"time"

	"iomd-notebook-be/internal/config"
	"iomd-notebook-be/internal/dto"
	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/pkg/logger"
	"iomd-notebook-be/internal/pkg/serverutils"
	"iomd-notebook-be/internal/repository/specification"
	"iomd-notebook-be/internal/repository/unitofwork"
)

type IFileService interface {
	Create(ctx context.Context, requester *entity.User, meta *dto.FileUploadMetadata, content []byte) (*dto.FileMetadataResponse, error)
	Update(ctx context.Context, requester *entity.User, fileId int64, meta *dto.FileUploadMetadata, content []byte) (*dto.FileMetadataResponse, error)
	Delete(ctx context.Context, requester *entity.User, fileId int64) error
	List(ctx context.Context, notebookId int64) ([]dto.FileSummary, error)
}

type fileService struct {
	uowFactory unitofwork.RepositoryFactory
	limits     config.LimitsConfig
	log        logger.ILogger
}

func NewFileService(uowFactory unitofwork.RepositoryFactory, limits config.LimitsConfig, log logger.ILogger) IFileService {
	return &fileService{
		uowFactory: uowFactory,
		limits:     limits,
		log:        log,
	}
}

// ownedNotebook resolves a notebook and enforces the single ownership
// predicate. Every mutating file operation goes through here.
func (s *fileService) ownedNotebook(ctx context.Context, uow unitofwork.UnitOfWork, requester *entity.User, notebookId int64) (*entity.Notebook, error) {
	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NewNotFound("notebook", "id=%d", notebookId)
	}
	if !notebook.CanEdit(requester) {
		return nil, serverutils.NewPermissionDenied("notebook %d is not owned by the requester", notebookId)
	}
	return notebook, nil
}

func (s *fileService) validate(filename string, content []byte) error {
	if len(filename) > s.limits.MaxFilenameLength {
		return serverutils.NewValidation("filename %q exceeds the maximum length of %d", filename, s.limits.MaxFilenameLength)
	}
	if len(content) > s.limits.MaxFileSize {
		return serverutils.NewValidation("file of %d bytes exceeds the maximum size of %d", len(content), s.limits.MaxFileSize)
	}
	return nil
}

func (s *fileService) Create(ctx context.Context, requester *entity.User, meta *dto.FileUploadMetadata, content []byte) (*dto.FileMetadataResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedNotebook(ctx, uow, requester, meta.NotebookId); err != nil {
		return nil, err
	}
	if err := s.validate(meta.Filename, content); err != nil {
		return nil, err
	}

	file := entity.File{
		NotebookId:  meta.NotebookId,
		Filename:    meta.Filename,
		Content:     content,
		LastUpdated: time.Now(),
	}
	if err := uow.FileRepository().Create(ctx, &file); err != nil {
		return nil, err
	}

	s.log.Info("file", "file created", map[string]interface{}{
		"file_id":     file.Id,
		"notebook_id": file.NotebookId,
		"size":        len(content),
	})

	return fileMetadata(&file), nil
}

func (s *fileService) Update(ctx context.Context, requester *entity.User, fileId int64, meta *dto.FileUploadMetadata, content []byte) (*dto.FileMetadataResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The declared notebook and the file's stored notebook are checked
	// independently; both must be owned by the requester. This stops a
	// caller from rebinding someone else's file by declaring a notebook
	// they do own.
	if _, err := s.ownedNotebook(ctx, uow, requester, meta.NotebookId); err != nil {
		return nil, err
	}

	file, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: fileId})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, serverutils.NewNotFound("file", "id=%d", fileId)
	}
	if _, err := s.ownedNotebook(ctx, uow, requester, file.NotebookId); err != nil {
		return nil, err
	}

	file.Filename = strings.TrimSpace(meta.Filename)
	if content != nil {
		file.Content = content
	}
	if err := s.validate(file.Filename, file.Content); err != nil {
		return nil, err
	}
	file.LastUpdated = time.Now()

	if err := uow.FileRepository().Update(ctx, file); err != nil {
		return nil, err
	}

	return fileMetadata(file), nil
}

func (s *fileService) Delete(ctx context.Context, requester *entity.User, fileId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: fileId})
	if err != nil {
		return err
	}
	if file == nil {
		return serverutils.NewNotFound("file", "id=%d", fileId)
	}
	if _, err := s.ownedNotebook(ctx, uow, requester, file.NotebookId); err != nil {
		return err
	}

	if err := uow.FileRepository().Delete(ctx, fileId); err != nil {
		return err
	}

	s.log.Info("file", "file deleted", map[string]interface{}{
		"file_id":     fileId,
		"notebook_id": file.NotebookId,
	})
	return nil
}

func (s *fileService) List(ctx context.Context, notebookId int64) ([]dto.FileSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	files, err := uow.FileRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebookId},
		specification.RecentlyUpdatedFirst{},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.FileSummary, 0, len(files))
	for _, f := range files {
		summaries = append(summaries, dto.FileSummary{
			Id:          f.Id,
			Filename:    f.Filename,
			LastUpdated: f.LastUpdated,
			Size:        len(f.Content),
		})
	}
	return summaries, nil
}

func fileMetadata(f *entity.File) *dto.FileMetadataResponse {
	return &dto.FileMetadataResponse{
		Id:          f.Id,
		NotebookId:  f.NotebookId,
		Filename:    f.Filename,
		LastUpdated: f.LastUpdated,
		Size:        len(f.Content),
	}
}

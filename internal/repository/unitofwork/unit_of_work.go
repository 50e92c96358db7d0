package unitofwork

import (
	"context"

	"iomd-notebook-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NotebookRepository() contract.NotebookRepository
	RevisionRepository() contract.RevisionRepository
	FileRepository() contract.FileRepository
	FileSourceRepository() contract.FileSourceRepository
	FileUpdateOperationRepository() contract.FileUpdateOperationRepository
}

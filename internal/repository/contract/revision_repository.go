package contract

import (
	"context"

	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/repository/specification"
)

// RevisionRepository has no Update: revisions are immutable once written.
type RevisionRepository interface {
	Create(ctx context.Context, revision *entity.NotebookRevision) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NotebookRevision, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotebookRevision, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

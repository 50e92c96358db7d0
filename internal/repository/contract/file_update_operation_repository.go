package contract

import (
	"context"

	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/repository/specification"
)

// FileUpdateOperationRepository backs the append-only refresh log. Update
// only ever advances the status of an existing row.
type FileUpdateOperationRepository interface {
	Create(ctx context.Context, op *entity.FileUpdateOperation) error
	Update(ctx context.Context, op *entity.FileUpdateOperation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileUpdateOperation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileUpdateOperation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

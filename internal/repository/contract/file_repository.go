package contract

import (
	"context"

	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/repository/specification"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	Update(ctx context.Context, file *entity.File) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

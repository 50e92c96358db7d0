package contract

import (
	"context"

	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/repository/specification"
)

type FileSourceRepository interface {
	Create(ctx context.Context, source *entity.FileSource) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileSource, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileSource, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

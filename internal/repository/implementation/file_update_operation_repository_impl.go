package implementation

import (
	"context"
	"errors"

	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/mapper"
	"iomd-notebook-be/internal/model"
	"iomd-notebook-be/internal/repository/contract"
	"iomd-notebook-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FileUpdateOperationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileUpdateOperationMapper
}

func NewFileUpdateOperationRepository(db *gorm.DB) contract.FileUpdateOperationRepository {
	return &FileUpdateOperationRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileUpdateOperationMapper(),
	}
}

func (r *FileUpdateOperationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FileUpdateOperationRepositoryImpl) Create(ctx context.Context, op *entity.FileUpdateOperation) error {
	m := r.mapper.ToModel(op)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*op = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileUpdateOperationRepositoryImpl) Update(ctx context.Context, op *entity.FileUpdateOperation) error {
	m := r.mapper.ToModel(op)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*op = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileUpdateOperationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileUpdateOperation, error) {
	var m model.FileUpdateOperation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileUpdateOperationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileUpdateOperation, error) {
	var models []*model.FileUpdateOperation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FileUpdateOperationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.FileUpdateOperation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

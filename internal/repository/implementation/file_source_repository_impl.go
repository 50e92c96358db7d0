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

type FileSourceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileSourceMapper
}

func NewFileSourceRepository(db *gorm.DB) contract.FileSourceRepository {
	return &FileSourceRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileSourceMapper(),
	}
}

func (r *FileSourceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FileSourceRepositoryImpl) Create(ctx context.Context, source *entity.FileSource) error {
	m := r.mapper.ToModel(source)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*source = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileSourceRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.FileSource{}, id).Error
}

func (r *FileSourceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileSource, error) {
	var m model.FileSource
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileSourceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileSource, error) {
	var models []*model.FileSource
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FileSourceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.FileSource{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

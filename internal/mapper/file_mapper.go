package mapper

import (
	"time"

	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}
	return &entity.File{
		Id:          f.Id,
		NotebookId:  f.NotebookId,
		Filename:    f.Filename,
		Content:     f.Content,
		LastUpdated: f.LastUpdated,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		Id:          f.Id,
		NotebookId:  f.NotebookId,
		Filename:    f.Filename,
		Content:     f.Content,
		LastUpdated: f.LastUpdated,
	}
}

func (m *FileMapper) ToEntities(files []*model.File) []*entity.File {
	entities := make([]*entity.File, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

type FileSourceMapper struct{}

func NewFileSourceMapper() *FileSourceMapper {
	return &FileSourceMapper{}
}

func (m *FileSourceMapper) ToEntity(s *model.FileSource) *entity.FileSource {
	if s == nil {
		return nil
	}
	var interval *time.Duration
	if s.UpdateIntervalSecs != nil {
		d := time.Duration(*s.UpdateIntervalSecs) * time.Second
		interval = &d
	}
	return &entity.FileSource{
		Id:             s.Id,
		NotebookId:     s.NotebookId,
		Filename:       s.Filename,
		URL:            s.URL,
		UpdateInterval: interval,
	}
}

func (m *FileSourceMapper) ToModel(s *entity.FileSource) *model.FileSource {
	if s == nil {
		return nil
	}
	var secs *int64
	if s.UpdateInterval != nil {
		v := int64(s.UpdateInterval.Seconds())
		secs = &v
	}
	return &model.FileSource{
		Id:                 s.Id,
		NotebookId:         s.NotebookId,
		Filename:           s.Filename,
		URL:                s.URL,
		UpdateIntervalSecs: secs,
	}
}

func (m *FileSourceMapper) ToEntities(sources []*model.FileSource) []*entity.FileSource {
	entities := make([]*entity.FileSource, len(sources))
	for i, s := range sources {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

type FileUpdateOperationMapper struct{}

func NewFileUpdateOperationMapper() *FileUpdateOperationMapper {
	return &FileUpdateOperationMapper{}
}

func (m *FileUpdateOperationMapper) ToEntity(o *model.FileUpdateOperation) *entity.FileUpdateOperation {
	if o == nil {
		return nil
	}
	return &entity.FileUpdateOperation{
		Id:           o.Id,
		FileSourceId: o.FileSourceId,
		Started:      o.Started,
		Status:       entity.OperationStatus(o.Status),
	}
}

func (m *FileUpdateOperationMapper) ToModel(o *entity.FileUpdateOperation) *model.FileUpdateOperation {
	if o == nil {
		return nil
	}
	return &model.FileUpdateOperation{
		Id:           o.Id,
		FileSourceId: o.FileSourceId,
		Started:      o.Started,
		Status:       string(o.Status),
	}
}

func (m *FileUpdateOperationMapper) ToEntities(ops []*model.FileUpdateOperation) []*entity.FileUpdateOperation {
	entities := make([]*entity.FileUpdateOperation, len(ops))
	for i, o := range ops {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

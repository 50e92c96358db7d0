package mapper

import (
	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/model"
)

type NotebookMapper struct{}

func NewNotebookMapper() *NotebookMapper {
	return &NotebookMapper{}
}

func (m *NotebookMapper) ToEntity(n *model.Notebook) *entity.Notebook {
	if n == nil {
		return nil
	}
	return &entity.Notebook{
		Id:         n.Id,
		OwnerId:    n.OwnerId,
		ForkedFrom: n.ForkedFrom,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotebookMapper) ToModel(n *entity.Notebook) *model.Notebook {
	if n == nil {
		return nil
	}
	return &model.Notebook{
		Id:         n.Id,
		OwnerId:    n.OwnerId,
		ForkedFrom: n.ForkedFrom,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotebookMapper) ToEntities(notebooks []*model.Notebook) []*entity.Notebook {
	entities := make([]*entity.Notebook, len(notebooks))
	for i, n := range notebooks {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

type RevisionMapper struct{}

func NewRevisionMapper() *RevisionMapper {
	return &RevisionMapper{}
}

func (m *RevisionMapper) ToEntity(r *model.NotebookRevision) *entity.NotebookRevision {
	if r == nil {
		return nil
	}
	return &entity.NotebookRevision{
		Id:         r.Id,
		NotebookId: r.NotebookId,
		Title:      r.Title,
		Content:    r.Content,
		IsDraft:    r.IsDraft,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RevisionMapper) ToModel(r *entity.NotebookRevision) *model.NotebookRevision {
	if r == nil {
		return nil
	}
	return &model.NotebookRevision{
		Id:         r.Id,
		NotebookId: r.NotebookId,
		Title:      r.Title,
		Content:    r.Content,
		IsDraft:    r.IsDraft,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RevisionMapper) ToEntities(revisions []*model.NotebookRevision) []*entity.NotebookRevision {
	entities := make([]*entity.NotebookRevision, len(revisions))
	for i, r := range revisions {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

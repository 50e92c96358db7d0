package model

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	OwnerId    uuid.UUID `gorm:"type:uuid;not null;index"`
	ForkedFrom *int64    `gorm:"index"` // references notebook_revisions(id)
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Notebook) TableName() string {
	return "notebooks"
}

type NotebookRevision struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	NotebookId int64     `gorm:"not null;index"`
	Title      string    `gorm:"type:varchar(120);not null"`
	Content    string    `gorm:"type:text"`
	IsDraft    bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (NotebookRevision) TableName() string {
	return "notebook_revisions"
}

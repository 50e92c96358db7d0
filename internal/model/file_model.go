package model

import (
	"time"
)

type File struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	NotebookId  int64     `gorm:"not null;index"`
	Filename    string    `gorm:"type:varchar(120);not null"`
	Content     []byte    `gorm:"type:bytea"`
	LastUpdated time.Time `gorm:"not null;index"`
}

func (File) TableName() string {
	return "files"
}

type FileSource struct {
	Id                 int64  `gorm:"primaryKey;autoIncrement"`
	NotebookId         int64  `gorm:"not null;index"`
	Filename           string `gorm:"type:varchar(120);not null"`
	URL                string `gorm:"type:varchar(8192);not null"`
	UpdateIntervalSecs *int64
}

func (FileSource) TableName() string {
	return "file_sources"
}

type FileUpdateOperation struct {
	Id           int64     `gorm:"primaryKey;autoIncrement"`
	FileSourceId int64     `gorm:"not null;index"`
	Started      time.Time `gorm:"not null;index"`
	Status       string    `gorm:"type:varchar(20);not null"`
}

func (FileUpdateOperation) TableName() string {
	return "file_update_operations"
}

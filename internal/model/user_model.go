package model

import (
	"github.com/google/uuid"
)

// User rows are written by the external auth collaborator; this service
// only reads them to resolve owners.
type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	FullName  string    `gorm:"type:varchar(255)"`
	AvatarURL *string   `gorm:"type:text"`
}

func (User) TableName() string {
	return "users"
}

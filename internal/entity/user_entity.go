package entity

import (
	"github.com/google/uuid"
)

// User is the identity snapshot supplied by the external auth collaborator.
// The core only reads it for ownership checks and presentation.
type User struct {
	Id            uuid.UUID
	Username      string
	FullName      string
	AvatarURL     *string
	Authenticated bool
}

func AnonymousUser() *User {
	return &User{}
}

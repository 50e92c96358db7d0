package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id      int64
	OwnerId uuid.UUID
	// ForkedFrom points at a revision of another notebook, not at the
	// notebook itself. Presentation walks revision -> notebook -> owner.
	ForkedFrom *int64
	CreatedAt  time.Time
}

// CanEdit is the single ownership predicate. Every mutating operation on a
// notebook or anything it owns goes through here.
func (n *Notebook) CanEdit(u *User) bool {
	return u != nil && u.Authenticated && u.Id == n.OwnerId
}

// NotebookRevision is an immutable snapshot of notebook content. Saving a
// notebook appends a new revision; existing rows are never updated.
type NotebookRevision struct {
	Id         int64
	NotebookId int64
	Title      string
	Content    string
	IsDraft    bool
	CreatedAt  time.Time
}

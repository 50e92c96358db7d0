package specification

import (
	"gorm.io/gorm"
)

// ByNotebookID filters child rows (revisions, files, sources) by notebook
type ByNotebookID struct {
	NotebookID int64
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

// LatestRevisionFirst is the one place the latest-revision total order is
// defined: newest creation time first, ties broken by the higher id. Two
// revisions saved in the same instant therefore still resolve
// deterministically.
type LatestRevisionFirst struct{}

func (s LatestRevisionFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

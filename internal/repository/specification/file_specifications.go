package specification

import (
	"gorm.io/gorm"
)

// RecentlyUpdatedFirst orders files most-recently-updated first. The
// ordering is user-visible in the file pane.
type RecentlyUpdatedFirst struct{}

func (s RecentlyUpdatedFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("last_updated DESC")
}

// ByFileSourceID filters update operations by their source
type ByFileSourceID struct {
	FileSourceID int64
}

func (s ByFileSourceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_source_id = ?", s.FileSourceID)
}

// RecentlyStartedFirst orders update operations newest start first; the
// first row is the source's current status.
type RecentlyStartedFirst struct{}

func (s RecentlyStartedFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("started DESC, id DESC")
}

// ByFilename filters files by their stored name. The core does not enforce
// filename uniqueness, so callers pair this with an ordering when they need
// one deterministic row.
type ByFilename struct {
	Filename string
}

func (s ByFilename) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("filename = ?", s.Filename)
}

package entity

import (
	"time"

	"iomd-notebook-be/internal/pkg/serverutils"
)

type File struct {
	Id          int64
	NotebookId  int64
	Filename    string
	Content     []byte
	LastUpdated time.Time
}

const (
	IntervalDaily  = 24 * time.Hour
	IntervalWeekly = 7 * 24 * time.Hour
)

// FileSource binds a notebook file to a remote URL refreshed on a fixed
// interval. A nil interval means the source is never refreshed on schedule.
type FileSource struct {
	Id             int64
	NotebookId     int64
	Filename       string
	URL            string
	UpdateInterval *time.Duration
}

// IntervalLabel maps the stored interval onto the closed label set. The
// mapping is deliberately not generalized: anything but NULL, one day or
// seven days is corrupt state.
func IntervalLabel(d *time.Duration) (string, error) {
	switch {
	case d == nil:
		return "never", nil
	case *d == IntervalDaily:
		return "daily", nil
	case *d == IntervalWeekly:
		return "weekly", nil
	default:
		return "", serverutils.NewCorruptState("unknown file source update interval: %s", d.String())
	}
}

// ParseIntervalLabel is the write-side inverse of IntervalLabel. Unknown
// labels are a caller mistake, not corrupt state.
func ParseIntervalLabel(label string) (*time.Duration, error) {
	switch label {
	case "never":
		return nil, nil
	case "daily":
		d := IntervalDaily
		return &d, nil
	case "weekly":
		d := IntervalWeekly
		return &d, nil
	default:
		return nil, serverutils.NewValidation("unknown update interval: %q", label)
	}
}

type OperationStatus string

const (
	OperationPending   OperationStatus = "pending"
	OperationRunning   OperationStatus = "running"
	OperationCompleted OperationStatus = "completed"
	OperationFailed    OperationStatus = "failed"
)

var operationStatusRank = map[OperationStatus]int{
	OperationPending:   0,
	OperationRunning:   1,
	OperationCompleted: 2,
	OperationFailed:    2,
}

// Label validates the stored status against the closed domain.
func (s OperationStatus) Label() (string, error) {
	if _, ok := operationStatusRank[s]; !ok {
		return "", serverutils.NewCorruptState("unknown file update operation status: %q", string(s))
	}
	return string(s), nil
}

// CanAdvanceTo enforces forward-only status transitions per operation.
func (s OperationStatus) CanAdvanceTo(next OperationStatus) bool {
	from, ok := operationStatusRank[s]
	if !ok {
		return false
	}
	to, ok := operationStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// FileUpdateOperation is one entry in the append-only refresh log. The
// current status of a source is the status of its most recently started
// operation, decided at read time.
type FileUpdateOperation struct {
	Id           int64
	FileSourceId int64
	Started      time.Time
	Status       OperationStatus
}

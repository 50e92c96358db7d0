package entity

import (
	"testing"
	"time"

	"iomd-notebook-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
)

func TestIntervalLabel(t *testing.T) {
	label, err := IntervalLabel(nil)
	assert.NoError(t, err)
	assert.Equal(t, "never", label)

	daily := IntervalDaily
	label, err = IntervalLabel(&daily)
	assert.NoError(t, err)
	assert.Equal(t, "daily", label)

	weekly := IntervalWeekly
	label, err = IntervalLabel(&weekly)
	assert.NoError(t, err)
	assert.Equal(t, "weekly", label)

	odd := 36 * time.Hour
	_, err = IntervalLabel(&odd)
	assert.True(t, serverutils.IsCorruptState(err))
}

func TestParseIntervalLabel(t *testing.T) {
	d, err := ParseIntervalLabel("never")
	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseIntervalLabel("daily")
	assert.NoError(t, err)
	assert.Equal(t, IntervalDaily, *d)

	d, err = ParseIntervalLabel("weekly")
	assert.NoError(t, err)
	assert.Equal(t, IntervalWeekly, *d)

	_, err = ParseIntervalLabel("hourly")
	assert.True(t, serverutils.IsValidation(err))
}

func TestOperationStatusLabel(t *testing.T) {
	for _, status := range []OperationStatus{OperationPending, OperationRunning, OperationCompleted, OperationFailed} {
		label, err := status.Label()
		assert.NoError(t, err)
		assert.Equal(t, string(status), label)
	}

	_, err := OperationStatus("exploded").Label()
	assert.True(t, serverutils.IsCorruptState(err))
}

func TestOperationStatusCanAdvanceTo(t *testing.T) {
	assert.True(t, OperationPending.CanAdvanceTo(OperationRunning))
	assert.True(t, OperationPending.CanAdvanceTo(OperationCompleted))
	assert.True(t, OperationRunning.CanAdvanceTo(OperationCompleted))
	assert.True(t, OperationRunning.CanAdvanceTo(OperationFailed))

	// No transitions out of a terminal status
	assert.False(t, OperationCompleted.CanAdvanceTo(OperationFailed))
	assert.False(t, OperationFailed.CanAdvanceTo(OperationCompleted))
	assert.False(t, OperationCompleted.CanAdvanceTo(OperationRunning))

	// No self or backward transitions
	assert.False(t, OperationRunning.CanAdvanceTo(OperationRunning))
	assert.False(t, OperationRunning.CanAdvanceTo(OperationPending))

	// Unknown statuses never advance
	assert.False(t, OperationStatus("exploded").CanAdvanceTo(OperationRunning))
	assert.False(t, OperationPending.CanAdvanceTo(OperationStatus("exploded")))
}

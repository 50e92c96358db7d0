package events

import "time"

// Event defines the contract for everything published to the NATS bus.
type Event interface {
	// EventType returns the unique code for this event
	// (e.g. "FILE_UPDATE_OPERATION_STATUS").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// OperationStatusChanged is published on every file update operation
// status transition so external consumers (dashboards, the scheduler) can
// follow refresh progress without polling.
func OperationStatusChanged(operationId, fileSourceId int64, status string) Event {
	return BaseEvent{
		Type: "FILE_UPDATE_OPERATION_STATUS",
		Data: map[string]interface{}{
			"operation_id":   operationId,
			"file_source_id": fileSourceId,
			"status":         status,
		},
		OccurredAt: time.Now(),
	}
}

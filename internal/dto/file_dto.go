package dto

import (
	"time"
)

// FileUploadMetadata is the JSON "metadata" part of the multipart upload.
type FileUploadMetadata struct {
	NotebookId int64  `json:"notebook_id" validate:"required"`
	Filename   string `json:"filename" validate:"required"`
}

type FileSummary struct {
	Id          int64     `json:"id"`
	Filename    string    `json:"filename"`
	LastUpdated time.Time `json:"last_updated"`
	Size        int       `json:"size"`
}

type FileMetadataResponse struct {
	Id          int64     `json:"id"`
	NotebookId  int64     `json:"notebook_id"`
	Filename    string    `json:"filename"`
	LastUpdated time.Time `json:"last_updated"`
	Size        int       `json:"size"`
}

type CreateFileSourceRequest struct {
	NotebookId     int64  `json:"notebook_id" validate:"required"`
	Filename       string `json:"filename" validate:"required"`
	URL            string `json:"url" validate:"required"`
	UpdateInterval string `json:"update_interval" validate:"required,oneof=never daily weekly"`
}

type OperationSummary struct {
	Id      int64     `json:"id"`
	Started time.Time `json:"scheduled_at"`
	Status  string    `json:"status"`
}

type FileSourceResponse struct {
	Id              int64             `json:"id"`
	NotebookId      int64             `json:"notebook_id"`
	Filename        string            `json:"filename"`
	URL             string            `json:"url"`
	UpdateInterval  string            `json:"update_interval"`
	LatestOperation *OperationSummary `json:"latest_file_update_operation,omitempty"`
}

// RefreshRequestedMessage is the event published on the bus when an owner
// (or the scheduler) asks for a file source refresh.
type RefreshRequestedMessage struct {
	FileSourceId int64 `json:"file_source_id"`
}

// OperationStatusMessage is broadcast over NATS on every status transition.
type OperationStatusMessage struct {
	OperationId  int64  `json:"operation_id"`
	FileSourceId int64  `json:"file_source_id"`
	Status       string `json:"status"`
}

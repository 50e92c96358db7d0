package dto

import (
	"time"
)

// NotebookInfo mirrors what the editor frontend needs to boot. ForkedFrom
// is the forked-from revision id, or literal false when the notebook is
// not a fork.
type NotebookInfo struct {
	Username          string               `json:"username"`
	UserCanSave       bool                 `json:"user_can_save"`
	NotebookId        int64                `json:"notebook_id"`
	RevisionId        int64                `json:"revision_id"`
	RevisionIsLatest  bool                 `json:"revision_is_latest"`
	ConnectionMode    string               `json:"connectionMode"`
	Title             string               `json:"title"`
	MaxFilenameLength int                  `json:"max_filename_length"`
	MaxFileSize       int                  `json:"max_file_size"`
	ForkedFrom        interface{}          `json:"forked_from"`
	Files             []FileSummary        `json:"files"`
	FileSources       []FileSourceResponse `json:"file_sources"`
}

type NotebookDetailResponse struct {
	Title           string       `json:"title"`
	UserInfo        UserInfo     `json:"user_info"`
	NotebookInfo    NotebookInfo `json:"notebook_info"`
	Iomd            string       `json:"iomd"`
	IframeSrc       string       `json:"iframe_src"`
	EvalFrameOrigin string       `json:"eval_frame_origin"`
}

// TryItResponse is the ephemeral unsaved notebook view. Nothing behind it
// is persisted.
type TryItResponse struct {
	UserInfo        UserInfo  `json:"user_info"`
	NotebookInfo    TryItInfo `json:"notebook_info"`
	Iomd            string    `json:"iomd"`
	IframeSrc       string    `json:"iframe_src"`
	EvalFrameOrigin string    `json:"eval_frame_origin"`
}

type TryItInfo struct {
	ConnectionMode string `json:"connectionMode"`
	TryItMode      bool   `json:"tryItMode"`
	Title          string `json:"title"`
}

type RevisionSummary struct {
	Id         int64     `json:"id"`
	NotebookId int64     `json:"notebookId"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
}

// OwnerInfo heads the revision-history payload. The forkedFrom fields are
// present only for forks, filled by walking revision -> notebook -> owner.
type OwnerInfo struct {
	Username             string `json:"username"`
	FullName             string `json:"full_name"`
	Avatar               string `json:"avatar"`
	Title                string `json:"title"`
	NotebookId           int64  `json:"notebookId"`
	ForkedFromTitle      string `json:"forkedFromTitle,omitempty"`
	ForkedFromRevisionID int64  `json:"forkedFromRevisionID,omitempty"`
	ForkedFromNotebookID int64  `json:"forkedFromNotebookID,omitempty"`
	ForkedFromUsername   string `json:"forkedFromUsername,omitempty"`
}

type RevisionListResponse struct {
	Title     string            `json:"title"`
	UserInfo  UserInfo          `json:"userInfo"`
	OwnerInfo OwnerInfo         `json:"ownerInfo"`
	Revisions []RevisionSummary `json:"revisions"`
	Files     []FileSummary     `json:"files"`
}

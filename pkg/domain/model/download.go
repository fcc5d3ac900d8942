package model

import "time"

// DownloadID identifies one save operation of the file saver
type DownloadID string

// DownloadResult represents an attachment saved to the local filesystem
type DownloadResult struct {
	ID          DownloadID  `json:"download_id"`
	Filename    string      `json:"filename"`
	Path        string      `json:"path"`
	Size        int64       `json:"size"`
	ArchivePath ArchivePath `json:"archive_path"`
	EntryPath   string      `json:"entry_path"`
}

// DownloadState is the state carried by a DownloadEvent
type DownloadState string

const (
	DownloadStateInProgress  DownloadState = "in_progress"
	DownloadStateComplete    DownloadState = "complete"
	DownloadStateInterrupted DownloadState = "interrupted"
)

// DownloadEvent is published by the file saver when a save operation changes
// state
type DownloadEvent struct {
	ID    DownloadID
	State DownloadState
	Path  string
	Error error
	At    time.Time
}

// SavedFile is what the file saver stored for a SaveRequest
type SavedFile struct {
	ID   DownloadID
	Path string
	Size int64
}

// SaveRequest asks the file saver to store Body under Filename. SaveAs
// requests a "save as" prompt instead of a silent save.
type SaveRequest struct {
	Filename string
	SaveAs   bool
	Body     []byte
}

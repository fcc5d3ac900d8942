package model

// MessageType is the type of an inbound message from the page observer
type MessageType string

const (
	MessageTypeDownloadItem MessageType = "DOWNLOAD_ITEM"
)

// DownloadMessage is the request sent by the page observer
type DownloadMessage struct {
	Type    MessageType       `json:"type"`
	Payload AttachmentRequest `json:"payload"`
}

// DownloadResponse is the reply to a DownloadMessage. Error holds text that
// can be shown to the user as is.
type DownloadResponse struct {
	Success    bool       `json:"success"`
	DownloadID DownloadID `json:"downloadId,omitempty"`
	Error      string     `json:"error,omitempty"`
}

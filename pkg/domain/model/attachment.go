package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const defaultExtension = ".pdf"

var (
	attachmentKeyPattern = regexp.MustCompile(`attachment/([A-Z0-9]+)`)
	titleSuffixPattern   = regexp.MustCompile(`- Zotero$`)
	unsafeFilenameChars  = strings.NewReplacer(
		":", "_",
		"\\", "_",
		"/", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
)

// AttachmentRequest is a single user request to download the attachment
// identified by Key, saved as Filename
type AttachmentRequest struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
}

// NewAttachmentRequest creates a request whose filename is derived from the
// page title
func NewAttachmentRequest(key, title string) *AttachmentRequest {
	return &AttachmentRequest{
		Key:      key,
		Filename: SanitizeFilename(key, title),
	}
}

// Validate checks that the request can be processed
func (r *AttachmentRequest) Validate() error {
	if strings.TrimSpace(r.Key) == "" {
		return goerr.New("attachment key is required")
	}
	if strings.TrimSpace(r.Filename) == "" {
		return goerr.New("filename is required", goerr.V("key", r.Key))
	}
	return nil
}

// SanitizeFilename turns a page title into a filename: characters that are
// invalid on common filesystems become "_" and ".pdf" is appended when
// missing. "{key}.pdf" is used when the title holds no usable text.
func SanitizeFilename(key, title string) string {
	text := strings.TrimSpace(titleSuffixPattern.ReplaceAllString(strings.TrimSpace(title), ""))
	text = unsafeFilenameChars.Replace(text)
	if text == "" {
		return key + defaultExtension
	}
	if strings.HasSuffix(text, defaultExtension) {
		return text
	}
	return text + defaultExtension
}

// ParseAttachmentKey extracts the attachment key from a Zotero web library
// URL or path such as "/user/items/ABCD1234/attachment/EFGH5678/reader"
func ParseAttachmentKey(pathOrURL string) (string, bool) {
	m := attachmentKeyPattern.FindStringSubmatch(pathOrURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

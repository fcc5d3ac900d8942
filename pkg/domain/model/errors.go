package model

import (
	"fmt"
	"net/http"
	"strings"
)

// ConfigurationError reports missing or invalid WebDAV settings. The user has
// to fix the settings; it is never retried.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("WebDAV settings not configured: %s is empty", e.Field)
}

// TransportError is returned when the WebDAV server answers outside the 2xx
// range. StatusCode is preserved so callers can tell "not found" apart.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	StatusText string
}

func (e *TransportError) Error() string {
	text := e.StatusText
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("WebDAV %s failed: %d %s", e.Method, e.StatusCode, text)
}

// IsNotFound reports whether the server answered 404
func (e *TransportError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NotFoundError means every archive path candidate was answered with 404
type NotFoundError struct {
	Key   string
	Paths []ArchivePath
}

func (e *NotFoundError) Error() string {
	paths := make([]string, len(e.Paths))
	for i, p := range e.Paths {
		paths[i] = string(p)
	}
	return fmt.Sprintf("file not found on WebDAV (checked %s), check your URL settings", strings.Join(paths, " and "))
}

// CorruptArchiveError means the fetched bytes are not a ZIP container
type CorruptArchiveError struct {
	Path  ArchivePath
	Cause error
}

func (e *CorruptArchiveError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("archive %s is not a valid ZIP file", e.Path)
	}
	return fmt.Sprintf("archive %s is not a valid ZIP file: %v", e.Path, e.Cause)
}

func (e *CorruptArchiveError) Unwrap() error {
	return e.Cause
}

// AttachmentNotFoundError means no entry of a valid archive could be selected
type AttachmentNotFoundError struct {
	Filename string
}

func (e *AttachmentNotFoundError) Error() string {
	return fmt.Sprintf("file not found in ZIP (wanted %q)", e.Filename)
}

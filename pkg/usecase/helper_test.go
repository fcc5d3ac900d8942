package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

// mockWebDAVClient serves fixed resources and answers 404 for anything else
type mockWebDAVClient struct {
	files    map[string][]byte
	metadata map[string]string
	errs     map[string]error
	calls    []string
}

func (m *mockWebDAVClient) FetchBytes(ctx context.Context, creds *model.RemoteCredentials, relPath string) ([]byte, error) {
	m.calls = append(m.calls, "GET "+relPath)
	if err, ok := m.errs[relPath]; ok {
		return nil, err
	}
	if data, ok := m.files[relPath]; ok {
		return data, nil
	}
	return nil, notFound(http.MethodGet, relPath)
}

func (m *mockWebDAVClient) FetchMetadata(ctx context.Context, creds *model.RemoteCredentials, relPath string) (string, error) {
	m.calls = append(m.calls, "PROPFIND "+relPath)
	if err, ok := m.errs[relPath]; ok {
		return "", err
	}
	if body, ok := m.metadata[relPath]; ok {
		return body, nil
	}
	return "", notFound("PROPFIND", relPath)
}

func notFound(method, path string) error {
	return &model.TransportError{Method: method, Path: path, StatusCode: http.StatusNotFound, StatusText: "Not Found"}
}

type zipFile struct {
	name    string
	content string
}

// createTestZip builds an in-memory archive keeping the order of files.
// Names ending with "/" become directory entries.
func createTestZip(t *testing.T, files ...zipFile) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.Create(f.name)
		gt.NoError(t, err)
		if f.content != "" {
			_, err = fw.Write([]byte(f.content))
			gt.NoError(t, err)
		}
	}
	gt.NoError(t, w.Close())
	return buf.Bytes()
}

func testCreds(t *testing.T) *model.RemoteCredentials {
	t.Helper()
	creds, err := model.NewRemoteCredentials("https://dav.example.com/dav", "alice", "s3cret")
	gt.NoError(t, err)
	return creds
}

func testSettings() *model.Settings {
	return &model.Settings{
		WebDAVURL: "https://dav.example.com/dav",
		Username:  "alice",
		Password:  "s3cret",
	}
}

// memorySaver stores payloads in memory and publishes events synchronously
type memorySaver struct {
	mu       sync.Mutex
	saved    map[string][]byte
	requests []*model.SaveRequest
	handlers []func(ctx context.Context, ev *model.DownloadEvent)
	err      error
}

func newMemorySaver() *memorySaver {
	return &memorySaver{saved: map[string][]byte{}}
}

func (s *memorySaver) Save(ctx context.Context, req *model.SaveRequest) (*model.SavedFile, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		s.mu.Unlock()
		return nil, s.err
	}
	path := "/downloads/" + req.Filename
	s.saved[path] = req.Body
	handlers := append([]func(context.Context, *model.DownloadEvent){}, s.handlers...)
	s.mu.Unlock()

	id := model.DownloadID(uuid.NewString())
	for _, h := range handlers {
		h(ctx, &model.DownloadEvent{ID: id, State: model.DownloadStateComplete, Path: path})
	}
	return &model.SavedFile{ID: id, Path: path, Size: int64(len(req.Body))}, nil
}

func (s *memorySaver) Subscribe(handler func(ctx context.Context, ev *model.DownloadEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// recordingOpener records opened paths
type recordingOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (o *recordingOpener) Open(ctx context.Context, path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	return o.err
}

func (o *recordingOpener) paths() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string{}, o.opened...)
}

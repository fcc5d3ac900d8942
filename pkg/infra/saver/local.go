package saver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/domain/interfaces"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

const maxNameAttempts = 100

// LocalSaver stores downloads in a directory on the local filesystem. Files
// are never overwritten; a numbered suffix is added instead.
type LocalSaver struct {
	dir      string
	prompter interfaces.Prompter

	mu       sync.RWMutex
	handlers []func(ctx context.Context, ev *model.DownloadEvent)
}

// Option is a functional option for LocalSaver
type Option func(*LocalSaver)

// WithPrompter enables "save as" prompts
func WithPrompter(p interfaces.Prompter) Option {
	return func(s *LocalSaver) {
		s.prompter = p
	}
}

// NewLocalSaver creates a saver writing into dir
func NewLocalSaver(dir string, opts ...Option) *LocalSaver {
	s := &LocalSaver{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers handler for download events
func (s *LocalSaver) Subscribe(handler func(ctx context.Context, ev *model.DownloadEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Save writes req.Body into the download directory. With req.SaveAs and a
// prompter configured, the user picks the final name.
func (s *LocalSaver) Save(ctx context.Context, req *model.SaveRequest) (*model.SavedFile, error) {
	logger := ctxlog.From(ctx)

	name := req.Filename
	if req.SaveAs && s.prompter != nil {
		answer, err := s.prompter.PromptFilename(ctx, name)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to prompt for filename", goerr.V("filename", name))
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			name = answer
		}
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create download directory", goerr.V("dir", s.dir))
	}

	path, file, err := s.create(name)
	if err != nil {
		return nil, err
	}

	id := model.DownloadID(uuid.NewString())
	s.publish(ctx, &model.DownloadEvent{ID: id, State: model.DownloadStateInProgress, Path: path})

	n, err := file.Write(req.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		err = goerr.Wrap(err, "failed to write downloaded file", goerr.V("path", path))
		s.publish(ctx, &model.DownloadEvent{ID: id, State: model.DownloadStateInterrupted, Path: path, Error: err})
		return nil, err
	}

	logger.Debug("Wrote downloaded file", "download_id", id, "path", path, "size_bytes", n)
	s.publish(ctx, &model.DownloadEvent{ID: id, State: model.DownloadStateComplete, Path: path})

	return &model.SavedFile{
		ID:   id,
		Path: path,
		Size: int64(n),
	}, nil
}

// create opens a new file for name inside the download directory, adding
// " (1)", " (2)", ... before the extension when the name is taken
func (s *LocalSaver) create(name string) (string, *os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < maxNameAttempts; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}

		path, err := securejoin.SecureJoin(s.dir, candidate)
		if err != nil {
			return "", nil, goerr.Wrap(err, "invalid download filename", goerr.V("filename", candidate))
		}
		if path == filepath.Clean(s.dir) {
			return "", nil, goerr.New("download filename resolves to the download directory", goerr.V("filename", candidate))
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", nil, goerr.Wrap(err, "failed to create parent directory", goerr.V("path", path))
		}

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", nil, goerr.Wrap(err, "failed to create downloaded file", goerr.V("path", path))
		}
		return path, file, nil
	}

	return "", nil, goerr.New("too many files with the same name", goerr.V("filename", name), goerr.V("dir", s.dir))
}

func (s *LocalSaver) publish(ctx context.Context, ev *model.DownloadEvent) {
	ev.At = time.Now()

	s.mu.RLock()
	handlers := make([]func(context.Context, *model.DownloadEvent), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, ev)
	}
}

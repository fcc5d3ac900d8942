package usecase

import (
	"context"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/domain/interfaces"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/m-mizutani/zotdav/pkg/utils/async"
)

// entrySizeMargin is how many bytes an entry may exceed its declared
// uncompressed size before it is treated as corrupt
const entrySizeMargin = 4 * 1024

// Dispatcher turns a selected archive entry into a saved local file and opens
// it once the saver reports completion
type Dispatcher struct {
	saver  interfaces.FileSaver
	opener interfaces.FileOpener
	opens  async.Group
}

// NewDispatcher creates a Dispatcher and subscribes it to the saver's events.
// A nil opener disables opening saved files.
func NewDispatcher(saver interfaces.FileSaver, opener interfaces.FileOpener) *Dispatcher {
	d := &Dispatcher{
		saver:  saver,
		opener: opener,
	}
	saver.Subscribe(d.onDownloadEvent)
	return d
}

// Deliver decompresses entryPath of archive and saves it as filename
func (d *Dispatcher) Deliver(ctx context.Context, archive *model.Archive, entryPath, filename string) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	entry, ok := archive.Listing.Lookup(entryPath)
	if !ok {
		return nil, goerr.New("entry not found in archive", goerr.V("path", archive.Path), goerr.V("entry", entryPath))
	}

	rc, err := archive.Open(entryPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	limit := int64(entry.Size) + entrySizeMargin
	payload, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, &model.CorruptArchiveError{Path: archive.Path, Cause: err}
	}
	if int64(len(payload)) > limit {
		return nil, &model.CorruptArchiveError{
			Path:  archive.Path,
			Cause: goerr.New("entry is larger than its declared size", goerr.V("entry", entryPath), goerr.V("declared", entry.Size)),
		}
	}

	saved, err := d.saver.Save(ctx, &model.SaveRequest{
		Filename: filename,
		SaveAs:   true,
		Body:     payload,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save attachment", goerr.V("filename", filename))
	}

	logger.Info("Saved attachment",
		"download_id", saved.ID,
		"path", saved.Path,
		"size_bytes", saved.Size,
		"entry", entryPath,
	)

	return &model.DownloadResult{
		ID:          saved.ID,
		Filename:    filename,
		Path:        saved.Path,
		Size:        saved.Size,
		ArchivePath: archive.Path,
		EntryPath:   entryPath,
	}, nil
}

// Wait blocks until every pending open action has finished
func (d *Dispatcher) Wait() {
	d.opens.Wait()
}

func (d *Dispatcher) onDownloadEvent(ctx context.Context, ev *model.DownloadEvent) {
	if ev.State != model.DownloadStateComplete || d.opener == nil {
		return
	}

	d.opens.Dispatch(ctx, func(ctx context.Context) error {
		ctxlog.From(ctx).Debug("Opening saved file", "download_id", ev.ID, "path", ev.Path)
		if err := d.opener.Open(ctx, ev.Path); err != nil {
			return goerr.Wrap(err, "failed to open saved file", goerr.V("path", ev.Path))
		}
		return nil
	})
}

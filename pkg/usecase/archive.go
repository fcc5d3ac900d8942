package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/domain/interfaces"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

// ArchiveResolver locates the archive of an item on the WebDAV server and
// decodes it
type ArchiveResolver struct {
	client interfaces.WebDAVClient
}

// NewArchiveResolver creates a new ArchiveResolver
func NewArchiveResolver(client interfaces.WebDAVClient) *ArchiveResolver {
	return &ArchiveResolver{
		client: client,
	}
}

// Resolve fetches the first archive candidate of key that exists and decodes
// it as a ZIP container
func (r *ArchiveResolver) Resolve(ctx context.Context, creds *model.RemoteCredentials, key string) (*model.Archive, error) {
	logger := ctxlog.From(ctx)

	data, path, err := firstFound(ctx, key, func(ctx context.Context, path model.ArchivePath) ([]byte, error) {
		return r.client.FetchBytes(ctx, creds, string(path))
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Downloaded archive",
		"key", key,
		"path", path,
		"size_bytes", len(data),
	)

	archive, err := DecodeArchive(path, data)
	if err != nil {
		return nil, err
	}

	logger.Debug("Decoded archive",
		"path", path,
		"entries", archive.Listing.Paths(),
	)

	return archive, nil
}

// Stat returns metadata of the first archive candidate of key that exists
func (r *ArchiveResolver) Stat(ctx context.Context, creds *model.RemoteCredentials, key string) (*model.ArchiveStat, error) {
	body, path, err := firstFound(ctx, key, func(ctx context.Context, path model.ArchivePath) (string, error) {
		return r.client.FetchMetadata(ctx, creds, string(path))
	})
	if err != nil {
		return nil, err
	}

	resources, err := ParseMultistatus(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read archive metadata", goerr.V("path", path))
	}
	if len(resources) == 0 {
		return nil, goerr.New("empty PROPFIND response", goerr.V("path", path))
	}

	return &model.ArchiveStat{
		Path:     path,
		Resource: resources[0],
	}, nil
}

// firstFound tries every archive path candidate of key in order. A "not
// found" answer moves on to the next candidate, any other error stops.
func firstFound[T any](ctx context.Context, key string, fetch func(context.Context, model.ArchivePath) (T, error)) (T, model.ArchivePath, error) {
	logger := ctxlog.From(ctx)

	var zero T
	candidates := model.ArchivePathCandidates(key)
	tried := make([]model.ArchivePath, 0, len(candidates))

	for _, path := range candidates {
		v, err := fetch(ctx, path)
		if err == nil {
			return v, path, nil
		}

		var transportErr *model.TransportError
		if !errors.As(err, &transportErr) || !transportErr.IsNotFound() {
			return zero, path, err
		}

		tried = append(tried, path)
		logger.Info("Archive not found, trying next candidate", "key", key, "path", path)
	}

	return zero, "", &model.NotFoundError{
		Key:   key,
		Paths: tried,
	}
}

// DecodeArchive reads the central directory of a ZIP container. Bytes that
// are not a ZIP container yield *model.CorruptArchiveError.
func DecodeArchive(path model.ArchivePath, data []byte) (*model.Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &model.CorruptArchiveError{Path: path, Cause: err}
	}

	entries := make([]model.ArchiveEntry, 0, len(zr.File))
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entry := model.ArchiveEntry{
			Path:  f.Name,
			IsDir: f.FileInfo().IsDir(),
			Size:  f.UncompressedSize64,
		}
		entries = append(entries, entry)
		files[model.NormalizeEntryPath(f.Name)] = f
	}

	open := func(entryPath string) (io.ReadCloser, error) {
		f, ok := files[entryPath]
		if !ok {
			return nil, goerr.New("entry not found in archive", goerr.V("path", path), goerr.V("entry", entryPath))
		}
		if f.FileInfo().IsDir() {
			return nil, goerr.New("entry is a directory", goerr.V("path", path), goerr.V("entry", entryPath))
		}

		rc, err := f.Open()
		if err != nil {
			return nil, &model.CorruptArchiveError{Path: path, Cause: err}
		}
		return rc, nil
	}

	return model.NewArchive(path, len(data), model.NewArchiveListing(entries), open), nil
}

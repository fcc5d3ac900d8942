package model

import (
	"io"
	"strings"
)

// ArchivePath is a candidate location of an item archive, relative to the
// WebDAV base URL
type ArchivePath string

// ArchivePathCandidates returns the remote paths for key in priority order.
// The base URL either points at the storage folder itself or at a parent
// holding a "zotero/" folder.
func ArchivePathCandidates(key string) []ArchivePath {
	return []ArchivePath{
		ArchivePath(key + ".zip"),
		ArchivePath("zotero/" + key + ".zip"),
	}
}

// ArchiveEntry is a single file or directory record inside an archive
type ArchiveEntry struct {
	Path  string
	IsDir bool
	Size  uint64
}

// ArchiveListing is the read-only, ordered set of entries of one archive.
// Order follows the archive's central directory.
type ArchiveListing struct {
	entries []ArchiveEntry
	index   map[string]int
}

// NewArchiveListing builds a listing. Paths are normalized to forward slashes
// and a later duplicate replaces the metadata of an earlier one in place.
func NewArchiveListing(entries []ArchiveEntry) *ArchiveListing {
	l := &ArchiveListing{
		index: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e.Path = NormalizeEntryPath(e.Path)
		if strings.HasSuffix(e.Path, "/") {
			e.IsDir = true
		}
		if i, ok := l.index[e.Path]; ok {
			l.entries[i] = e
			continue
		}
		l.index[e.Path] = len(l.entries)
		l.entries = append(l.entries, e)
	}
	return l
}

// NormalizeEntryPath converts an archive-internal name to a relative,
// forward-slash separated path
func NormalizeEntryPath(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	for strings.HasPrefix(name, "./") {
		name = name[2:]
	}
	return strings.TrimLeft(name, "/")
}

// Entries returns a copy of the entries in listing order
func (l *ArchiveListing) Entries() []ArchiveEntry {
	out := make([]ArchiveEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Paths returns entry paths in listing order
func (l *ArchiveListing) Paths() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Path
	}
	return out
}

// Lookup returns the entry stored at path
func (l *ArchiveListing) Lookup(path string) (ArchiveEntry, bool) {
	i, ok := l.index[NormalizeEntryPath(path)]
	if !ok {
		return ArchiveEntry{}, false
	}
	return l.entries[i], true
}

// Len returns the number of entries
func (l *ArchiveListing) Len() int {
	return len(l.entries)
}

// EntryOpener opens the content of an archive entry by its normalized path
type EntryOpener func(entryPath string) (io.ReadCloser, error)

// Archive is a fetched and decoded item archive
type Archive struct {
	Path    ArchivePath
	Size    int
	Listing *ArchiveListing
	open    EntryOpener
}

// NewArchive binds a listing to the byte source it was decoded from
func NewArchive(path ArchivePath, size int, listing *ArchiveListing, open EntryOpener) *Archive {
	return &Archive{
		Path:    path,
		Size:    size,
		Listing: listing,
		open:    open,
	}
}

// Open returns a reader of the decompressed entry content
func (a *Archive) Open(entryPath string) (io.ReadCloser, error) {
	return a.open(NormalizeEntryPath(entryPath))
}

// RemoteResource is one response of a PROPFIND multistatus body
type RemoteResource struct {
	Href          string `json:"href"`
	IsCollection  bool   `json:"is_collection"`
	ContentLength int64  `json:"content_length"`
	ContentType   string `json:"content_type,omitempty"`
	ETag          string `json:"etag,omitempty"`
	LastModified  string `json:"last_modified,omitempty"`
}

// ArchiveStat is the metadata of the archive located for a key
type ArchiveStat struct {
	Path     ArchivePath    `json:"path"`
	Resource RemoteResource `json:"resource"`
}

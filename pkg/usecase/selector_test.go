package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/m-mizutani/zotdav/pkg/usecase"
)

func listingOf(paths ...string) *model.ArchiveListing {
	entries := make([]model.ArchiveEntry, len(paths))
	for i, p := range paths {
		entries[i] = model.ArchiveEntry{Path: p}
	}
	return model.NewArchiveListing(entries)
}

func TestSelectAttachment(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		desired string
		want    string
	}{
		{
			name:    "exact suffix match",
			entries: []string{"folder/report.pdf", "folder/.DS_Store"},
			desired: "report.pdf",
			want:    "folder/report.pdf",
		},
		{
			name:    "no suffix match falls back to first plausible file",
			entries: []string{"abc123.pdf"},
			desired: "paper.pdf",
			want:    "abc123.pdf",
		},
		{
			name:    "suffix match wins over earlier plausible file",
			entries: []string{"cover.png", "sub/My Paper.pdf"},
			desired: "My Paper.pdf",
			want:    "sub/My Paper.pdf",
		},
		{
			name:    "first of several suffix matches",
			entries: []string{"a/report.pdf", "b/report.pdf"},
			desired: "report.pdf",
			want:    "a/report.pdf",
		},
		{
			name:    "suffix match is case sensitive",
			entries: []string{"other.pdf", "REPORT.PDF"},
			desired: "report.pdf",
			want:    "other.pdf",
		},
		{
			name:    "directories are never selected",
			entries: []string{"report.pdf/", "x/report.pdf/", "paper.pdf"},
			desired: "report.pdf",
			want:    "paper.pdf",
		},
		{
			name:    "fallback skips hidden and macOS metadata",
			entries: []string{".hidden", "__MACOSX/._paper.pdf", "docs/", "docs/paper.pdf"},
			desired: "unrelated.pdf",
			want:    "docs/paper.pdf",
		},
		{
			name:    "exact suffix match may select a macOS metadata entry",
			entries: []string{"__MACOSX/._report.pdf", "report.pdf"},
			desired: "._report.pdf",
			want:    "__MACOSX/._report.pdf",
		},
		{
			name:    "empty desired filename takes the first file",
			entries: []string{"folder/", ".hidden", "paper.pdf"},
			desired: "",
			want:    ".hidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.SelectAttachment(context.Background(), listingOf(tt.entries...), tt.desired)
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
		})
	}
}

func TestSelectAttachment_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
	}{
		{name: "only metadata", entries: []string{"__MACOSX/._x.pdf", ".hidden"}},
		{name: "only directories", entries: []string{"a/", "b/c/"}},
		{name: "empty archive", entries: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.SelectAttachment(context.Background(), listingOf(tt.entries...), "paper.pdf")
			gt.Equal(t, got, "")

			var notFoundErr *model.AttachmentNotFoundError
			gt.True(t, errors.As(err, &notFoundErr))
			gt.Equal(t, notFoundErr.Filename, "paper.pdf")
		})
	}
}

func TestSelectAttachment_Idempotent(t *testing.T) {
	ctx := context.Background()
	client := &mockWebDAVClient{
		files: map[string][]byte{
			"zotero/ABCD1234.zip": createTestZip(t,
				zipFile{name: "__MACOSX/._a.pdf"},
				zipFile{name: "first.pdf", content: "1"},
				zipFile{name: "second.pdf", content: "2"},
			),
		},
	}
	resolver := usecase.NewArchiveResolver(client)

	var selected []string
	for i := 0; i < 2; i++ {
		archive, err := resolver.Resolve(ctx, testCreds(t), "ABCD1234")
		gt.NoError(t, err)
		entry, err := usecase.SelectAttachment(ctx, archive.Listing, "paper.pdf")
		gt.NoError(t, err)
		selected = append(selected, entry)
	}

	gt.Equal(t, selected[0], "first.pdf")
	gt.Equal(t, selected[1], selected[0])
}

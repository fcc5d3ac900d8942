package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

// selectionRule is one row of the attachment decision table
type selectionRule struct {
	name  string
	match func(entry model.ArchiveEntry, desired string) bool
}

// selectionRules are evaluated in order; the first rule matching any entry
// wins and, within a rule, the first entry in archive order wins.
var selectionRules = []selectionRule{
	{
		// An empty desired name matches every file
		name: "exact-suffix",
		match: func(entry model.ArchiveEntry, desired string) bool {
			return !entry.IsDir && strings.HasSuffix(entry.Path, desired)
		},
	},
	{
		name: "first-plausible",
		match: func(entry model.ArchiveEntry, _ string) bool {
			return !entry.IsDir &&
				!strings.HasPrefix(entry.Path, ".") &&
				!strings.Contains(entry.Path, "__MACOSX")
		},
	},
}

// SelectAttachment picks the single entry of listing that is the attachment
// for desiredFilename
func SelectAttachment(ctx context.Context, listing *model.ArchiveListing, desiredFilename string) (string, error) {
	entries := listing.Entries()

	for _, rule := range selectionRules {
		for _, entry := range entries {
			if !rule.match(entry, desiredFilename) {
				continue
			}

			ctxlog.From(ctx).Debug("Selected attachment entry",
				"entry", entry.Path,
				"rule", rule.name,
				"desired_filename", desiredFilename,
			)
			return entry.Path, nil
		}
	}

	return "", &model.AttachmentNotFoundError{Filename: desiredFilename}
}

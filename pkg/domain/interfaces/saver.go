package interfaces

import (
	"context"

	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

// FileSaver is the host facility that stores a payload on the local
// filesystem. Completion is reported through subscribed handlers, not by the
// return value of Save.
type FileSaver interface {
	Save(ctx context.Context, req *model.SaveRequest) (*model.SavedFile, error)
	Subscribe(handler func(ctx context.Context, ev *model.DownloadEvent))
}

// FileOpener opens a saved file with the system's default application
type FileOpener interface {
	Open(ctx context.Context, path string) error
}

// Prompter asks the user where a file should be saved. An empty answer keeps
// the suggested name.
type Prompter interface {
	PromptFilename(ctx context.Context, suggested string) (string, error)
}

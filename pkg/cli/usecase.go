package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/zotdav/pkg/cli/config"
	"github.com/m-mizutani/zotdav/pkg/infra/saver"
	"github.com/m-mizutani/zotdav/pkg/infra/webdav"
	"github.com/m-mizutani/zotdav/pkg/usecase"
)

// newDownloadUseCase wires the pipeline. A nil prompt reader disables the
// filename prompt regardless of flags.
func newDownloadUseCase(cfg config.Download, promptIn io.Reader, promptOut io.Writer) *usecase.Download {
	var saverOpts []saver.Option
	if !cfg.NoPrompt && promptIn != nil {
		saverOpts = append(saverOpts, saver.WithPrompter(saver.NewTerminalPrompter(promptIn, promptOut)))
	}
	localSaver := saver.NewLocalSaver(cfg.Dir, saverOpts...)

	var dispatcher *usecase.Dispatcher
	if cfg.NoOpen {
		dispatcher = usecase.NewDispatcher(localSaver, nil)
	} else {
		dispatcher = usecase.NewDispatcher(localSaver, saver.NewSystemOpener())
	}

	resolver := usecase.NewArchiveResolver(webdav.NewClient())
	return usecase.NewDownload(resolver, dispatcher)
}

// newServerDownloadUseCase wires the pipeline for serve. The server has no
// terminal to ask on, so save-as always keeps the suggested name.
func newServerDownloadUseCase(ctx context.Context, cfg config.Download) *usecase.Download {
	ctxlog.From(ctx).Warn("Save-as prompt is disabled in server mode, attachments are saved with the suggested name",
		slog.String("download_dir", cfg.Dir),
	)
	return newDownloadUseCase(cfg, nil, nil)
}

package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/zotdav/pkg/cli/config"
	"github.com/m-mizutani/zotdav/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	app, logger := newApp()

	if err := app.Run(ctx, args); err != nil {
		l := *logger
		if l == nil {
			l = slog.Default()
		}
		l.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

// newApp builds the root command. The returned pointer is filled with the
// configured logger once Before has run.
func newApp() (*cli.Command, **slog.Logger) {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
		flush     = func() {}
	)

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    types.AppName,
		Usage:   "Download Zotero attachments from a WebDAV file-sync server",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			f, err := sentryCfg.Configure()
			if err != nil {
				return nil, err
			}
			flush = f
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			flush()
			return nil
		},
		Commands: []*cli.Command{
			cmdDownload(),
			cmdServe(),
			cmdConfig(),
			cmdCheck(),
			cmdStat(),
		},
	}

	return app, &logger
}

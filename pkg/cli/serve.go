package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/cli/config"
	controller "github.com/m-mizutani/zotdav/pkg/controller/http"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		webdavCfg   config.WebDAV
		downloadCfg config.Download
	)

	flags := append(serverCfg.Flags(), webdavCfg.Flags()...)
	flags = append(flags, downloadCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the local companion HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting zotdav server",
				slog.String("addr", serverCfg.Addr),
				slog.String("download_dir", downloadCfg.Dir),
			)

			downloadUC := newServerDownloadUseCase(ctx, downloadCfg)
			defer downloadUC.Wait()

			loadSettings := func(ctx context.Context) (*model.Settings, error) {
				return webdavCfg.Load()
			}

			server, err := controller.NewServer(
				ctx,
				downloadUC,
				loadSettings,
				controller.WithAddr(serverCfg.Addr),
				controller.WithAllowOrigin(serverCfg.AllowOrigin),
				controller.WithErrorReporter(func(ctx context.Context, err error) {
					sentry.CaptureException(err)
				}),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

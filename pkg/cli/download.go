package cli

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/cli/config"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdDownload() *cli.Command {
	var (
		webdavCfg   config.WebDAV
		downloadCfg config.Download
		key         string
		title       string
		pageURL     string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "key",
			Aliases:     []string{"k"},
			Usage:       "Zotero attachment key",
			Destination: &key,
		},
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "Title used to build the saved filename",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Zotero web library URL of the attachment (used when --key is empty)",
			Destination: &pageURL,
		},
	}
	flags = append(flags, webdavCfg.Flags()...)
	flags = append(flags, downloadCfg.Flags()...)

	return &cli.Command{
		Name:    "download",
		Aliases: []string{"d"},
		Usage:   "Download one attachment and save it locally",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			out := c.Root().Writer

			if key == "" && pageURL != "" {
				parsed, ok := model.ParseAttachmentKey(pageURL)
				if !ok {
					return goerr.New("no attachment key in URL", goerr.V("url", pageURL))
				}
				key = parsed
			}
			if key == "" {
				return goerr.New("either --key or --url is required")
			}

			req := model.NewAttachmentRequest(key, title)
			logger.Info("Downloading attachment",
				slog.String("key", req.Key),
				slog.String("filename", req.Filename),
			)

			settings, err := webdavCfg.Load()
			if err != nil {
				return reportFailure(c, err)
			}

			uc := newDownloadUseCase(downloadCfg, c.Root().Reader, c.Root().ErrWriter)
			result, err := uc.Download(ctx, settings, req)
			uc.Wait()
			if err != nil {
				return reportFailure(c, err)
			}

			_, _ = color.New(color.FgGreen).Fprintf(out, "Downloaded %s\n", result.Path)
			return nil
		},
	}
}

// reportFailure prints the outbound failure text and forwards the error to
// Sentry when it is configured
func reportFailure(c *cli.Command, err error) error {
	sentry.CaptureException(err)
	_, _ = color.New(color.FgRed).Fprintf(c.Root().Writer, "Download failed: %s\n", err.Error())
	return err
}

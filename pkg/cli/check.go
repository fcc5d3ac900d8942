package cli

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/zotdav/pkg/cli/config"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/m-mizutani/zotdav/pkg/infra/webdav"
	"github.com/urfave/cli/v3"
)

func cmdCheck() *cli.Command {
	var webdavCfg config.WebDAV

	return &cli.Command{
		Name:  "check",
		Usage: "Check that the configured WebDAV server is reachable",
		Flags: webdavCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			creds, err := loadCredentials(&webdavCfg)
			if err != nil {
				return err
			}

			probe, err := webdav.NewProber(nil).Probe(ctx, creds)
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Info("WebDAV server reachable",
				slog.String("base_url", probe.BaseURL),
				slog.String("layout", string(probe.Layout)),
			)

			out := c.Root().Writer
			_, _ = color.New(color.FgGreen).Fprintf(out, "Connected to %s\n", probe.BaseURL)
			switch probe.Layout {
			case model.StorageLayoutParent:
				_, _ = out.Write([]byte("Archives are looked up under zotero/\n"))
			default:
				_, _ = out.Write([]byte("Archives are looked up directly under the URL\n"))
			}
			return nil
		},
	}
}

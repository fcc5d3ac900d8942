package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/cli/config"
	"github.com/m-mizutani/zotdav/pkg/infra/webdav"
	"github.com/m-mizutani/zotdav/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdStat() *cli.Command {
	var (
		webdavCfg config.WebDAV
		key       string
	)

	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:        "key",
			Aliases:     []string{"k"},
			Usage:       "Zotero attachment key",
			Required:    true,
			Destination: &key,
		},
	}, webdavCfg.Flags()...)

	return &cli.Command{
		Name:  "stat",
		Usage: "Show WebDAV metadata of the archive holding an attachment",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			creds, err := loadCredentials(&webdavCfg)
			if err != nil {
				return err
			}

			resolver := usecase.NewArchiveResolver(webdav.NewClient())
			stat, err := resolver.Stat(ctx, creds, key)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(stat); err != nil {
				return goerr.Wrap(err, "failed to encode archive metadata")
			}
			return nil
		},
	}
}

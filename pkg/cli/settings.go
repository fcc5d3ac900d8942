package cli

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/cli/config"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

const maskedPassword = "********"

func cmdConfig() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the WebDAV settings file",
		Commands: []*cli.Command{
			cmdConfigSet(),
			cmdConfigShow(),
		},
	}
}

func cmdConfigSet() *cli.Command {
	var webdavCfg config.WebDAV

	return &cli.Command{
		Name:  "set",
		Usage: "Write the given values into the settings file, keeping the others",
		Flags: webdavCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := webdavCfg.Load()
			if err != nil {
				return err
			}

			store := webdavCfg.Store()
			if err := store.Save(settings); err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Settings saved", slog.String("path", store.Path()))
			_, _ = color.New(color.FgGreen).Fprintf(c.Root().Writer, "Saved %s\n", store.Path())
			return nil
		},
	}
}

func cmdConfigShow() *cli.Command {
	var webdavCfg config.WebDAV

	return &cli.Command{
		Name:  "show",
		Usage: "Print the effective settings with the password masked",
		Flags: webdavCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := webdavCfg.Load()
			if err != nil {
				return err
			}

			shown := *settings
			if shown.Password != "" {
				shown.Password = maskedPassword
			}

			raw, err := toml.Marshal(&shown)
			if err != nil {
				return goerr.Wrap(err, "failed to encode settings")
			}

			_, err = c.Root().Writer.Write(raw)
			if err != nil {
				return goerr.Wrap(err, "failed to write settings")
			}
			return nil
		},
	}
}

// loadCredentials reads the effective settings and converts them into
// credentials, failing on the first missing field
func loadCredentials(webdavCfg *config.WebDAV) (*model.RemoteCredentials, error) {
	settings, err := webdavCfg.Load()
	if err != nil {
		return nil, err
	}
	return settings.Credentials()
}

package config

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// Download holds configuration of where and how attachments are saved
type Download struct {
	Dir      string
	NoPrompt bool
	NoOpen   bool
}

// DefaultDownloadDir returns ~/Downloads, or the working directory when the
// home directory is unknown
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// Flags returns CLI flags for download configuration
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "download-dir",
			Usage:       "Directory to save attachments in",
			Value:       DefaultDownloadDir(),
			Destination: &c.Dir,
			Sources:     cli.EnvVars("ZOTDAV_DOWNLOAD_DIR"),
		},
		&cli.BoolFlag{
			Name:        "no-prompt",
			Usage:       "Save with the suggested name without asking",
			Destination: &c.NoPrompt,
			Sources:     cli.EnvVars("ZOTDAV_NO_PROMPT"),
		},
		&cli.BoolFlag{
			Name:        "no-open",
			Usage:       "Do not open the file after saving",
			Destination: &c.NoOpen,
			Sources:     cli.EnvVars("ZOTDAV_NO_OPEN"),
		},
	}
}

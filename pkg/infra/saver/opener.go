package saver

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pkg/browser"
)

// SystemOpener opens files with the desktop's default application
type SystemOpener struct{}

// NewSystemOpener creates a SystemOpener
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{}
}

// Open hands path to xdg-open, open or start depending on the platform
func (o *SystemOpener) Open(ctx context.Context, path string) error {
	if err := browser.OpenFile(path); err != nil {
		return goerr.Wrap(err, "failed to open file", goerr.V("path", path))
	}
	return nil
}

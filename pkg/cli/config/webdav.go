package config

import (
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/m-mizutani/zotdav/pkg/infra/settings"
	"github.com/urfave/cli/v3"
)

// WebDAV holds the WebDAV storage configuration. Values given by flags or
// environment variables take precedence over the settings file.
type WebDAV struct {
	URL          string
	Username     string
	Password     string
	SettingsPath string
}

// Flags returns CLI flags for WebDAV configuration
func (c *WebDAV) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webdav-url",
			Usage:       "WebDAV URL of the Zotero storage (the folder holding the archives, or its parent)",
			Destination: &c.URL,
			Sources:     cli.EnvVars("ZOTDAV_WEBDAV_URL"),
		},
		&cli.StringFlag{
			Name:        "webdav-username",
			Usage:       "WebDAV username",
			Destination: &c.Username,
			Sources:     cli.EnvVars("ZOTDAV_WEBDAV_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "webdav-password",
			Usage:       "WebDAV password",
			Destination: &c.Password,
			Sources:     cli.EnvVars("ZOTDAV_WEBDAV_PASSWORD"),
		},
		&cli.StringFlag{
			Name:        "settings",
			Usage:       "Path of the settings file",
			Value:       settings.DefaultPath(),
			Destination: &c.SettingsPath,
			Sources:     cli.EnvVars("ZOTDAV_SETTINGS"),
		},
	}
}

// Store returns the settings file store
func (c *WebDAV) Store() *settings.Store {
	path := c.SettingsPath
	if path == "" {
		path = settings.DefaultPath()
	}
	return settings.NewStore(path)
}

// Load reads the settings file and applies flag overrides. It is called once
// per request.
func (c *WebDAV) Load() (*model.Settings, error) {
	s, err := c.Store().Load()
	if err != nil {
		return nil, err
	}

	if c.URL != "" {
		s.WebDAVURL = model.NormalizeBaseURL(c.URL)
	}
	if c.Username != "" {
		s.Username = c.Username
	}
	if c.Password != "" {
		s.Password = c.Password
	}

	return s, nil
}

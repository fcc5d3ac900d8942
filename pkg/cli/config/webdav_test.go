package config_test

import (
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/zotdav/pkg/cli/config"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

func TestWebDAV_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	stored := &config.WebDAV{SettingsPath: path}
	gt.NoError(t, stored.Store().Save(&model.Settings{
		WebDAVURL: "https://dav.example.com/zotero",
		Username:  "alice",
		Password:  "from-file",
	}))

	t.Run("file values are used when no flag is set", func(t *testing.T) {
		cfg := &config.WebDAV{SettingsPath: path}
		s, err := cfg.Load()
		gt.NoError(t, err)
		gt.Equal(t, s.WebDAVURL, "https://dav.example.com/zotero/")
		gt.Equal(t, s.Username, "alice")
		gt.Equal(t, s.Password, "from-file")
	})

	t.Run("flags override the file", func(t *testing.T) {
		cfg := &config.WebDAV{
			SettingsPath: path,
			URL:          "https://other.example.com/dav",
			Password:     "from-flag",
		}
		s, err := cfg.Load()
		gt.NoError(t, err)
		gt.Equal(t, s.WebDAVURL, "https://other.example.com/dav/")
		gt.Equal(t, s.Username, "alice")
		gt.Equal(t, s.Password, "from-flag")
	})

	t.Run("missing file yields empty settings", func(t *testing.T) {
		cfg := &config.WebDAV{SettingsPath: filepath.Join(t.TempDir(), "none.toml")}
		s, err := cfg.Load()
		gt.NoError(t, err)
		gt.Equal(t, s.WebDAVURL, "")

		_, err = s.Credentials()
		gt.Error(t, err)
	})
}

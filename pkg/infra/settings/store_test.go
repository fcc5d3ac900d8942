package settings_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/m-mizutani/zotdav/pkg/infra/settings"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := settings.NewStore(filepath.Join(t.TempDir(), "settings.toml"))

	s, err := store.Load()
	gt.NoError(t, err)
	gt.Equal(t, *s, model.Settings{})
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zotdav", "settings.toml")
	store := settings.NewStore(path)

	gt.NoError(t, store.Save(&model.Settings{
		WebDAVURL: "https://dav.example.com/zotero",
		Username:  "alice",
		Password:  "s3cret",
	}))

	s, err := store.Load()
	gt.NoError(t, err)
	gt.Equal(t, s.WebDAVURL, "https://dav.example.com/zotero/")
	gt.Equal(t, s.Username, "alice")
	gt.Equal(t, s.Password, "s3cret")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		gt.NoError(t, err)
		gt.Equal(t, info.Mode().Perm(), os.FileMode(0600))
	}
}

func TestStore_LoadNormalizesURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	gt.NoError(t, os.WriteFile(path, []byte(`webdav_url = "https://dav.example.com/dav"
username = "alice"
password = "s3cret"
`), 0600))

	s, err := settings.NewStore(path).Load()
	gt.NoError(t, err)
	gt.Equal(t, s.WebDAVURL, "https://dav.example.com/dav/")
}

func TestStore_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	gt.NoError(t, os.WriteFile(path, []byte("webdav_url = [unterminated"), 0600))

	_, err := settings.NewStore(path).Load()
	gt.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	gt.Equal(t, filepath.Base(settings.DefaultPath()), "settings.toml")
}

package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/m-mizutani/zotdav/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
)

const fileName = "settings.toml"

// Store persists the WebDAV settings as a TOML file
type Store struct {
	path string
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the settings file under the user's config directory
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+types.AppName, fileName)
	}
	return filepath.Join(dir, types.AppName, fileName)
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings. A missing file yields empty settings.
func (s *Store) Load() (*model.Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &model.Settings{}, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read settings file", goerr.V("path", s.path))
	}

	var settings model.Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, goerr.Wrap(err, "failed to parse settings file", goerr.V("path", s.path))
	}

	settings.WebDAVURL = model.NormalizeBaseURL(settings.WebDAVURL)
	return &settings, nil
}

// Save writes the settings with the base URL normalized. The file holds a
// password, so it is only readable by the owner.
func (s *Store) Save(settings *model.Settings) error {
	normalized := *settings
	normalized.WebDAVURL = model.NormalizeBaseURL(normalized.WebDAVURL)

	data, err := toml.Marshal(&normalized)
	if err != nil {
		return goerr.Wrap(err, "failed to encode settings")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return goerr.Wrap(err, "failed to create settings directory", goerr.V("path", s.path))
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return goerr.Wrap(err, "failed to write settings file", goerr.V("path", s.path))
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(s.path, 0600); err != nil {
		return goerr.Wrap(err, "failed to set settings file permissions", goerr.V("path", s.path))
	}

	return nil
}

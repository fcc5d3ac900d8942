package model

import "strings"

// Settings is the persisted configuration of the WebDAV storage. It is loaded
// once per request and passed explicitly through the pipeline.
type Settings struct {
	WebDAVURL string `toml:"webdav_url" json:"webdav_url"`
	Username  string `toml:"username" json:"username"`
	Password  string `toml:"password" json:"password" masq:"secret"`
}

// Credentials builds RemoteCredentials from the settings
func (s *Settings) Credentials() (*RemoteCredentials, error) {
	if s == nil {
		return nil, &ConfigurationError{Field: "webdav_url"}
	}
	return NewRemoteCredentials(s.WebDAVURL, s.Username, s.Password)
}

// RemoteCredentials holds the base URL and Basic auth pair for one download
// attempt. BaseURL always ends with "/".
type RemoteCredentials struct {
	BaseURL  string
	Username string
	Password string `masq:"secret"`
}

// NewRemoteCredentials validates and normalizes credentials. All three values
// are required.
func NewRemoteCredentials(baseURL, username, password string) (*RemoteCredentials, error) {
	baseURL = strings.TrimSpace(baseURL)
	switch {
	case baseURL == "":
		return nil, &ConfigurationError{Field: "webdav_url"}
	case username == "":
		return nil, &ConfigurationError{Field: "username"}
	case password == "":
		return nil, &ConfigurationError{Field: "password"}
	}

	return &RemoteCredentials{
		BaseURL:  NormalizeBaseURL(baseURL),
		Username: username,
		Password: password,
	}, nil
}

// NormalizeBaseURL appends a trailing slash. An empty URL stays empty.
func NormalizeBaseURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}

// URL joins the base URL and a path relative to it
func (c *RemoteCredentials) URL(relPath string) string {
	return c.BaseURL + strings.TrimPrefix(relPath, "/")
}

package webdav

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/studio-b12/gowebdav"
)

const probeTimeout = 30 * time.Second

// Prober checks that the configured server is reachable and detects which
// storage layout the base URL points at
type Prober struct {
	transport http.RoundTripper
}

// NewProber creates a Prober. A nil transport uses the default one.
func NewProber(transport http.RoundTripper) *Prober {
	return &Prober{transport: transport}
}

// Probe connects to the server and looks for a "zotero" collection below the
// base URL
func (p *Prober) Probe(ctx context.Context, creds *model.RemoteCredentials) (*model.ServerProbe, error) {
	logger := ctxlog.From(ctx)

	client := gowebdav.NewClient(creds.BaseURL, creds.Username, creds.Password)
	client.SetTimeout(probeTimeout)
	if p.transport != nil {
		client.SetTransport(p.transport)
	}

	if err := client.Connect(); err != nil {
		return nil, goerr.Wrap(err, "failed to connect to WebDAV server", goerr.V("url", creds.BaseURL))
	}

	result := &model.ServerProbe{
		BaseURL: creds.BaseURL,
		Layout:  model.StorageLayoutStorage,
	}

	info, err := client.Stat("zotero")
	switch {
	case err == nil && info != nil && info.IsDir():
		result.Layout = model.StorageLayoutParent
	case err == nil, gowebdav.IsErrNotFound(err):
	default:
		return nil, goerr.Wrap(err, "failed to look up zotero folder", goerr.V("url", creds.BaseURL))
	}

	logger.Debug("WebDAV server probed", "url", creds.BaseURL, "layout", result.Layout)
	return result, nil
}

package interfaces

import (
	"context"

	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

// WebDAVClient is the minimal transport the resolver needs. Implementations
// must return *model.TransportError for responses outside the 2xx range and
// must not retry.
type WebDAVClient interface {
	// FetchBytes downloads the resource at relPath
	FetchBytes(ctx context.Context, creds *model.RemoteCredentials, relPath string) ([]byte, error)

	// FetchMetadata issues a Depth 0 PROPFIND and returns the raw multistatus body
	FetchMetadata(ctx context.Context, creds *model.RemoteCredentials, relPath string) (string, error)
}

package webdav_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/m-mizutani/zotdav/pkg/infra/webdav"
)

const collectionBody = `<?xml version="1.0" encoding="utf-8"?>
<d:multistatus xmlns:d="DAV:">
  <d:response>
    <d:href>/dav/zotero/</d:href>
    <d:propstat>
      <d:prop>
        <d:displayname>zotero</d:displayname>
        <d:resourcetype><d:collection/></d:resourcetype>
        <d:getlastmodified>Mon, 12 Jan 2026 10:00:00 GMT</d:getlastmodified>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
</d:multistatus>`

func TestProber_Probe(t *testing.T) {
	tests := []struct {
		name       string
		hasZotero  bool
		wantLayout model.StorageLayout
	}{
		{name: "base url is the storage folder", hasZotero: false, wantLayout: model.StorageLayoutStorage},
		{name: "base url is the parent folder", hasZotero: true, wantLayout: model.StorageLayoutParent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.Method {
				case http.MethodOptions:
					w.WriteHeader(http.StatusOK)
				case webdav.MethodPropfind:
					isRoot := strings.TrimSuffix(r.URL.Path, "/") == "/dav"
					if !isRoot && !tt.hasZotero {
						http.NotFound(w, r)
						return
					}
					href := "/dav/zotero/"
					if isRoot {
						href = "/dav/"
					}
					w.Header().Set("Content-Type", "application/xml")
					w.WriteHeader(207)
					_, _ = w.Write([]byte(strings.ReplaceAll(collectionBody, "/dav/zotero/", href)))
				default:
					w.WriteHeader(http.StatusMethodNotAllowed)
				}
			}))
			defer server.Close()

			creds := newCreds(t, server.URL)
			result, err := webdav.NewProber(nil).Probe(context.Background(), creds)
			gt.NoError(t, err)
			gt.Equal(t, result.Layout, tt.wantLayout)
			gt.Equal(t, result.BaseURL, creds.BaseURL)
		})
	}
}

func TestProber_Probe_ConnectFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := webdav.NewProber(nil).Probe(context.Background(), newCreds(t, server.URL))
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to connect to WebDAV server")
}

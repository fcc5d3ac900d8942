package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/zotdav/pkg/domain/interfaces"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

// DefaultAllowOrigin is the Zotero web library origin
const DefaultAllowOrigin = "https://www.zotero.org"

// SettingsFunc loads the WebDAV settings for one request
type SettingsFunc func(ctx context.Context) (*model.Settings, error)

// config holds internal HTTP server configuration
type config struct {
	addr        string
	allowOrigin string
	report      ErrorReporter
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithAllowOrigin sets the origin allowed to post messages from a browser
func WithAllowOrigin(origin string) Option {
	return func(c *config) {
		c.allowOrigin = origin
	}
}

// WithErrorReporter sets where failed downloads are reported
func WithErrorReporter(report ErrorReporter) Option {
	return func(c *config) {
		c.report = report
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	downloadUC interfaces.DownloadUseCase,
	loadSettings SettingsFunc,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr:        "localhost:8080",
		allowOrigin: DefaultAllowOrigin,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(CORSMiddleware(cfg.allowOrigin))

	router.Get("/health", handleHealth)

	messageHandler := NewMessageHandler(downloadUC, loadSettings, cfg.report)
	router.Post("/api/messages", messageHandler.Handle)
	router.Options("/api/messages", handlePreflight)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}

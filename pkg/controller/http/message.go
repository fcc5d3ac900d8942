package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/domain/interfaces"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
	"github.com/m-mizutani/zotdav/pkg/utils/async"
)

const maxMessageSize = 64 * 1024

// ErrorReporter forwards a failed download to an external error tracker
type ErrorReporter func(ctx context.Context, err error)

// MessageHandler accepts page observer messages
type MessageHandler struct {
	downloadUC   interfaces.DownloadUseCase
	loadSettings SettingsFunc
	report       ErrorReporter
}

// NewMessageHandler creates a new MessageHandler. report may be nil.
func NewMessageHandler(downloadUC interfaces.DownloadUseCase, loadSettings SettingsFunc, report ErrorReporter) *MessageHandler {
	return &MessageHandler{
		downloadUC:   downloadUC,
		loadSettings: loadSettings,
		report:       report,
	}
}

// Handle processes a DOWNLOAD_ITEM message. The reply always has the
// DownloadResponse shape so the caller can show Error as is.
func (h *MessageHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageSize))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, failure("failed to read request body"))
		return
	}
	defer r.Body.Close()

	var msg model.DownloadMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		logger.Warn("Invalid message payload", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, failure("invalid JSON payload"))
		return
	}

	if msg.Type != model.MessageTypeDownloadItem {
		logger.Warn("Unsupported message type", "type", msg.Type)
		writeJSON(ctx, w, http.StatusBadRequest, failure(fmt.Sprintf("unsupported message type: %q", msg.Type)))
		return
	}

	settings, err := h.loadSettings(ctx)
	if err != nil {
		logger.Error("Failed to load settings", "error", err)
		h.reportFailure(ctx, err)
		writeJSON(ctx, w, http.StatusInternalServerError, failure(err.Error()))
		return
	}

	resp := h.downloadUC.HandleMessage(ctx, settings, &msg)
	if !resp.Success {
		h.reportFailure(ctx, goerr.New(resp.Error, goerr.V("key", msg.Payload.Key)))
		writeJSON(ctx, w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

func failure(msg string) *model.DownloadResponse {
	return &model.DownloadResponse{Success: false, Error: msg}
}

// reportFailure hands err to the reporter off the request goroutine
func (h *MessageHandler) reportFailure(ctx context.Context, err error) {
	if h.report == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		h.report(ctx, err)
		return nil
	})
}

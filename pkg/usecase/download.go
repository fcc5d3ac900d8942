package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/zotdav/pkg/domain/interfaces"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

// Download runs the attachment pipeline: credentials, archive resolution,
// entry selection and delivery, strictly in sequence
type Download struct {
	resolver   interfaces.ArchiveResolver
	dispatcher *Dispatcher
}

// NewDownload creates a new Download use case
func NewDownload(resolver interfaces.ArchiveResolver, dispatcher *Dispatcher) *Download {
	return &Download{
		resolver:   resolver,
		dispatcher: dispatcher,
	}
}

// Download resolves, selects and saves the attachment of req. Domain errors
// are returned as is so their text can be shown to the user.
func (uc *Download) Download(ctx context.Context, settings *model.Settings, req *model.AttachmentRequest) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	creds, err := settings.Credentials()
	if err != nil {
		return nil, err
	}

	logger.Info("Starting download",
		"key", req.Key,
		"filename", req.Filename,
		"base_url", creds.BaseURL,
	)

	archive, err := uc.resolver.Resolve(ctx, creds, req.Key)
	if err != nil {
		return nil, err
	}

	logger.Info("Files in archive", "key", req.Key, "entries", archive.Listing.Paths())

	entryPath, err := SelectAttachment(ctx, archive.Listing, req.Filename)
	if err != nil {
		return nil, err
	}

	return uc.dispatcher.Deliver(ctx, archive, entryPath, req.Filename)
}

// HandleMessage processes a DOWNLOAD_ITEM message and never returns nil
func (uc *Download) HandleMessage(ctx context.Context, settings *model.Settings, msg *model.DownloadMessage) *model.DownloadResponse {
	logger := ctxlog.From(ctx)

	if msg == nil || msg.Type != model.MessageTypeDownloadItem {
		var msgType model.MessageType
		if msg != nil {
			msgType = msg.Type
		}
		return &model.DownloadResponse{
			Success: false,
			Error:   fmt.Sprintf("unsupported message type: %q", msgType),
		}
	}

	result, err := uc.Download(ctx, settings, &msg.Payload)
	if err != nil {
		logger.Error("Download failed", "key", msg.Payload.Key, "error", err)
		return &model.DownloadResponse{
			Success: false,
			Error:   err.Error(),
		}
	}

	return &model.DownloadResponse{
		Success:    true,
		DownloadID: result.ID,
	}
}

// Wait blocks until saved files have been handed to the opener
func (uc *Download) Wait() {
	uc.dispatcher.Wait()
}

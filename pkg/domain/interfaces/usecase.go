package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . DownloadUseCase

import (
	"context"

	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

// DownloadUseCase runs the attachment resolution pipeline
type DownloadUseCase interface {
	// Download resolves, selects and saves the attachment of req
	Download(ctx context.Context, settings *model.Settings, req *model.AttachmentRequest) (*model.DownloadResult, error)

	// HandleMessage adapts an inbound page observer message to Download
	HandleMessage(ctx context.Context, settings *model.Settings, msg *model.DownloadMessage) *model.DownloadResponse
}

// ArchiveResolver locates and decodes the archive of an item
type ArchiveResolver interface {
	Resolve(ctx context.Context, creds *model.RemoteCredentials, key string) (*model.Archive, error)
	Stat(ctx context.Context, creds *model.RemoteCredentials, key string) (*model.ArchiveStat, error)
}

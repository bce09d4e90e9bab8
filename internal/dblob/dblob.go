// Package dblob is the migration shim for call sites written against the old
// DBlob blob-storage API. It exposes the legacy function surface over two
// interchangeable backends: a remote one that calls the real asset service,
// and an ephemeral process-local one for flows where no durable backend is
// reachable. Callers cannot tell which backing store answers them.
package dblob

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/modules/model"
)

// Legacy DBlob mime constants, carried for old call sites.
const (
	MimeImgPNG    = "image/png"
	MimeImgJPEG   = "image/jpeg"
	MimeImgWebp   = "image/webp"
	MimeAudioMPEG = "audio/mpeg"
	MimeAudioWav  = "audio/wav"
)

// ImageInput is the raw payload handed to AddDBImageAsset; the shim does the
// base64 encoding the old browser layer used to do.
type ImageInput struct {
	MimeType string
	Data     []byte
}

// AddImageParams mirrors the params object of the old addDBImageAsset call.
type AddImageParams struct {
	Label    string
	Origin   json.RawMessage // tagged union, same wire shape as the boundary
	Metadata model.ImageAssetMetadata
}

// Store is the legacy DBlob surface. Both backends implement exactly this
// set of signatures.
type Store interface {
	AddDBImageAsset(ctx context.Context, scopeID model.ScopeID, image ImageInput, params AddImageParams) (uuid.UUID, error)
	GetDBAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	// GetImageAsset resolves the id and fails when the record is not an image.
	GetImageAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	// GetImageAssetAsBlobURL materializes the decoded payload into a local
	// temporary handle (a file:// URL) suitable for direct rendering.
	GetImageAssetAsBlobURL(ctx context.Context, id uuid.UUID) (string, error)
	GCDBImageAssets(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, keepIDs []uuid.UUID) (int64, error)
	GCDBAssetsByScope(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, assetType *model.AssetType, keepIDs []uuid.UUID) (int64, error)
	DeleteDBAsset(ctx context.Context, id uuid.UUID) error
	TransferDBAssetContextScope(ctx context.Context, id uuid.UUID, contextID model.ContextID, scopeID model.ScopeID) error
}

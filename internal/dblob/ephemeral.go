package dblob

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/infra/queue"
	"github.com/memodb-io/assetd/internal/modules/model"
	"github.com/memodb-io/assetd/internal/modules/repo"
	"github.com/memodb-io/assetd/internal/modules/service"
	"go.uber.org/zap"
)

// ephemeralStore serves the legacy surface from a process-local map. Used
// where no durable backend is reachable at call time (pre-auth flows);
// nothing it holds survives the process.
type ephemeralStore struct {
	svc service.AssetService
	gc  service.GCService
}

// NewEphemeral builds a shim store over the in-memory storage backend.
func NewEphemeral() Store {
	r := repo.NewMemoryAssetRepo()
	log := zap.NewNop()
	mq := queue.NewNopPublisher()
	return &ephemeralStore{
		svc: service.NewAssetService(r, log, mq),
		gc:  service.NewGCService(r, log, mq),
	}
}

func (s *ephemeralStore) AddDBImageAsset(ctx context.Context, scopeID model.ScopeID, image ImageInput, params AddImageParams) (uuid.UUID, error) {
	meta, err := sonic.Marshal(params.Metadata)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal image metadata: %w", err)
	}

	contextID := model.ContextGlobal
	return s.svc.Add(ctx, service.AddAssetInput{
		AssetType: model.AssetTypeImage,
		Label:     params.Label,
		Data: model.AssetData{
			MimeType: image.MimeType,
			Base64:   base64.StdEncoding.EncodeToString(image.Data),
		},
		Origin:    params.Origin,
		Metadata:  meta,
		ContextID: &contextID,
		ScopeID:   &scopeID,
	})
}

func (s *ephemeralStore) GetDBAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	return s.svc.Get(ctx, id)
}

func (s *ephemeralStore) GetImageAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	a, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.AssetType != model.AssetTypeImage {
		return nil, fmt.Errorf("asset %s is not an image", id)
	}
	return a, nil
}

func (s *ephemeralStore) GetImageAssetAsBlobURL(ctx context.Context, id uuid.UUID) (string, error) {
	a, err := s.GetImageAsset(ctx, id)
	if err != nil {
		return "", err
	}
	return materializeBlobURL(a)
}

func (s *ephemeralStore) GCDBImageAssets(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, keepIDs []uuid.UUID) (int64, error) {
	img := model.AssetTypeImage
	return s.gc.SweepScope(ctx, contextID, scopeID, &img, keepIDs)
}

func (s *ephemeralStore) GCDBAssetsByScope(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, assetType *model.AssetType, keepIDs []uuid.UUID) (int64, error) {
	return s.gc.SweepScope(ctx, contextID, scopeID, assetType, keepIDs)
}

func (s *ephemeralStore) DeleteDBAsset(ctx context.Context, id uuid.UUID) error {
	return s.svc.Delete(ctx, id)
}

func (s *ephemeralStore) TransferDBAssetContextScope(ctx context.Context, id uuid.UUID, contextID model.ContextID, scopeID model.ScopeID) error {
	return s.svc.TransferScope(ctx, id, contextID, scopeID)
}

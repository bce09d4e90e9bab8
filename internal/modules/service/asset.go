package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/infra/queue"
	"github.com/memodb-io/assetd/internal/modules/model"
	"github.com/memodb-io/assetd/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssetService is the store: it owns validation and the translation between
// wire-shaped asset data and persisted records. It is the only write/read
// path to the persistence layer.
type AssetService interface {
	Add(ctx context.Context, in AddAssetInput) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	ListByType(ctx context.Context, assetType model.AssetType) ([]model.Asset, error)
	ListByScopeAndType(ctx context.Context, assetType model.AssetType, contextID model.ContextID, scopeID model.ScopeID) ([]model.Asset, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateAssetInput) (*model.Asset, error)
	TransferScope(ctx context.Context, id uuid.UUID, contextID model.ContextID, scopeID model.ScopeID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
	DeleteAllScoped(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID) (int64, error)
}

type assetService struct {
	r   repo.AssetRepo
	log *zap.Logger
	mq  queue.Publisher
}

func NewAssetService(r repo.AssetRepo, log *zap.Logger, mq queue.Publisher) AssetService {
	return &assetService{r: r, log: log, mq: mq}
}

type AddAssetInput struct {
	AssetType model.AssetType
	Label     string
	Data      model.AssetData
	Origin    json.RawMessage
	Metadata  json.RawMessage
	// Partition; defaults to (GLOBAL, APP_CHAT) when omitted.
	ContextID *model.ContextID
	ScopeID   *model.ScopeID
}

func (s *assetService) Add(ctx context.Context, in AddAssetInput) (uuid.UUID, error) {
	if !in.AssetType.Valid() {
		return uuid.Nil, validationErr("asset_type", "must be IMAGE or AUDIO")
	}
	if in.Data.MimeType == "" || in.Data.Base64 == "" {
		return uuid.Nil, validationErr("content", "mimeType and base64 are required")
	}
	if err := validateMetadata(in.AssetType, in.Metadata); err != nil {
		return uuid.Nil, err
	}

	userOrigin, genOrigin, err := decodeOrigin(in.Origin)
	if err != nil {
		return uuid.Nil, err
	}

	contextID := model.ContextGlobal
	if in.ContextID != nil {
		contextID = *in.ContextID
	}
	scopeID := model.ScopeAppChat
	if in.ScopeID != nil {
		scopeID = *in.ScopeID
	}

	a := &model.Asset{
		ID:        uuid.New(),
		AssetType: in.AssetType,
		Label:     in.Label,
		MimeType:  in.Data.MimeType,
		Base64:    in.Data.Base64,
		Metadata:  datatypes.JSON(in.Metadata),
		ContextID: contextID,
		ScopeID:   scopeID,
		Cache:     datatypes.JSONMap{},
	}

	// Only the matching variant's columns are populated; the other variant's
	// columns stay NULL.
	switch {
	case userOrigin != nil:
		a.OriginType = model.OriginTypeUser
		a.OriginSource = userOrigin.Source
		a.OriginMedia = userOrigin.Media
		a.OriginURL = userOrigin.URL
		a.OriginFileName = userOrigin.FileName
	case genOrigin != nil:
		a.OriginType = model.OriginTypeGenerated
		a.OriginSource = genOrigin.Source
		a.OriginGeneratorName = &genOrigin.GeneratorName
		a.OriginPrompt = &genOrigin.Prompt
		a.OriginParameters = datatypes.JSONMap(genOrigin.Parameters)
		a.OriginGeneratedAt = genOrigin.GeneratedAt
	}

	if err := s.r.Create(ctx, a); err != nil {
		return uuid.Nil, fmt.Errorf("create asset record: %w", err)
	}

	s.mq.Publish(ctx, queue.EventAssetCreated, assetEvent(a))
	return a.ID, nil
}

func (s *assetService) Get(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	a, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

func (s *assetService) ListByType(ctx context.Context, assetType model.AssetType) ([]model.Asset, error) {
	if !assetType.Valid() {
		return nil, validationErr("asset_type", "must be IMAGE or AUDIO")
	}
	return s.r.ListByType(ctx, assetType)
}

func (s *assetService) ListByScopeAndType(ctx context.Context, assetType model.AssetType, contextID model.ContextID, scopeID model.ScopeID) ([]model.Asset, error) {
	if !assetType.Valid() {
		return nil, validationErr("asset_type", "must be IMAGE or AUDIO")
	}
	return s.r.ListByScopeAndType(ctx, assetType, contextID, scopeID)
}

type UpdateAssetInput struct {
	Label    *string
	Metadata json.RawMessage
}

// Update is partial: only label and metadata are mutable. Metadata is
// re-validated against the stored record's asset type before it is written.
func (s *assetService) Update(ctx context.Context, id uuid.UUID, in UpdateAssetInput) (*model.Asset, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Label != nil {
		fields["label"] = *in.Label
	}
	if len(in.Metadata) > 0 {
		if err := validateMetadata(current.AssetType, in.Metadata); err != nil {
			return nil, err
		}
		fields["metadata"] = datatypes.JSON(in.Metadata)
	}
	if len(fields) == 0 {
		return current, nil
	}

	n, err := s.r.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	if n == 0 {
		return nil, ErrAssetNotFound
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mq.Publish(ctx, queue.EventAssetUpdated, assetEvent(updated))
	return updated, nil
}

func (s *assetService) TransferScope(ctx context.Context, id uuid.UUID, contextID model.ContextID, scopeID model.ScopeID) error {
	n, err := s.r.TransferScope(ctx, id, contextID, scopeID)
	if err != nil {
		return fmt.Errorf("transfer asset scope: %w", err)
	}
	if n == 0 {
		return ErrAssetNotFound
	}

	s.mq.Publish(ctx, queue.EventAssetTransferred, map[string]any{
		"id":         id,
		"context_id": contextID,
		"scope_id":   scopeID,
	})
	return nil
}

func (s *assetService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	s.mq.Publish(ctx, queue.EventAssetDeleted, map[string]any{"ids": []uuid.UUID{id}})
	return nil
}

func (s *assetService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	n, err := s.r.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete assets: %w", err)
	}
	if n > 0 {
		s.mq.Publish(ctx, queue.EventAssetDeleted, map[string]any{"ids": ids})
	}
	return n, nil
}

func (s *assetService) DeleteAllScoped(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID) (int64, error) {
	n, err := s.r.DeleteAllScoped(ctx, contextID, scopeID)
	if err != nil {
		return 0, fmt.Errorf("delete scoped assets: %w", err)
	}
	s.log.Sugar().Infow("deleted scoped assets",
		"context_id", contextID, "scope_id", scopeID, "count", n)

	if n > 0 {
		s.mq.Publish(ctx, queue.EventAssetDeleted, map[string]any{
			"context_id": contextID,
			"scope_id":   scopeID,
			"count":      n,
		})
	}
	return n, nil
}

// assetEvent is the payload published on create/update; it deliberately
// omits the base64 body.
func assetEvent(a *model.Asset) map[string]any {
	return map[string]any{
		"id":         a.ID,
		"asset_type": a.AssetType,
		"label":      a.Label,
		"mime_type":  a.MimeType,
		"context_id": a.ContextID,
		"scope_id":   a.ScopeID,
	}
}

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/modules/model"
	"gorm.io/gorm"
)

// AssetRepo is the sole path to persisted asset records. Two implementations
// exist: the gorm/postgres one below and the process-local ephemeral one in
// asset_memory.go; the bootstrap picks one from configuration.
type AssetRepo interface {
	Create(ctx context.Context, a *model.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	ListByType(ctx context.Context, assetType model.AssetType) ([]model.Asset, error)
	ListByScopeAndType(ctx context.Context, assetType model.AssetType, contextID model.ContextID, scopeID model.ScopeID) ([]model.Asset, error)
	// Update applies the given column set and returns the number of rows hit.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	TransferScope(ctx context.Context, id uuid.UUID, contextID model.ContextID, scopeID model.ScopeID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
	DeleteAllScoped(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID) (int64, error)
	// ListIDsByScope returns the GC candidate set for a partition, optionally
	// narrowed to one asset type.
	ListIDsByScope(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, assetType *model.AssetType) ([]uuid.UUID, error)
}

type assetRepo struct{ db *gorm.DB }

func NewAssetRepo(db *gorm.DB) AssetRepo {
	return &assetRepo{db: db}
}

func (r *assetRepo) Create(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assetRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var a model.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) ListByType(ctx context.Context, assetType model.AssetType) ([]model.Asset, error) {
	var items []model.Asset
	return items, r.db.WithContext(ctx).
		Where("asset_type = ?", assetType).
		Order("created_at DESC, id DESC").
		Find(&items).Error
}

func (r *assetRepo) ListByScopeAndType(ctx context.Context, assetType model.AssetType, contextID model.ContextID, scopeID model.ScopeID) ([]model.Asset, error) {
	var items []model.Asset
	return items, r.db.WithContext(ctx).
		Where("asset_type = ? AND context_id = ? AND scope_id = ?", assetType, contextID, scopeID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
}

func (r *assetRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Asset{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *assetRepo) TransferScope(ctx context.Context, id uuid.UUID, contextID model.ContextID, scopeID model.ScopeID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Asset{}).Where("id = ?", id).Updates(map[string]any{
		"context_id": contextID,
		"scope_id":   scopeID,
	})
	return res.RowsAffected, res.Error
}

func (r *assetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Deleting an absent id is "already gone", not an error.
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Asset{}).Error
}

func (r *assetRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Asset{})
	return res.RowsAffected, res.Error
}

func (r *assetRepo) DeleteAllScoped(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("context_id = ? AND scope_id = ?", contextID, scopeID).
		Delete(&model.Asset{})
	return res.RowsAffected, res.Error
}

func (r *assetRepo) ListIDsByScope(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, assetType *model.AssetType) ([]uuid.UUID, error) {
	q := r.db.WithContext(ctx).Model(&model.Asset{}).
		Where("context_id = ? AND scope_id = ?", contextID, scopeID)
	if assetType != nil {
		q = q.Where("asset_type = ?", *assetType)
	}

	var ids []uuid.UUID
	return ids, q.Pluck("id", &ids).Error
}

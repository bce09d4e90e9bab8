package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/modules/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// memoryAssetRepo is the ephemeral, process-local backend. It exists for
// deployments where no durable engine is reachable (and for tests); nothing
// it holds survives a restart and nothing is shared across processes.
type memoryAssetRepo struct {
	mu     sync.Mutex
	items  map[uuid.UUID]*model.Asset
	seq    map[uuid.UUID]uint64
	nextSq uint64
}

func NewMemoryAssetRepo() AssetRepo {
	return &memoryAssetRepo{
		items: make(map[uuid.UUID]*model.Asset),
		seq:   make(map[uuid.UUID]uint64),
	}
}

func cloneAsset(a *model.Asset) *model.Asset {
	c := *a
	return &c
}

func (r *memoryAssetRepo) Create(_ context.Context, a *model.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	r.nextSq++
	r.items[a.ID] = cloneAsset(a)
	r.seq[a.ID] = r.nextSq
	return nil
}

func (r *memoryAssetRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneAsset(a), nil
}

// sortedDesc returns the matching records most recent first, with the
// insertion sequence breaking creation-time ties.
func (r *memoryAssetRepo) sortedDesc(match func(*model.Asset) bool) []model.Asset {
	out := make([]model.Asset, 0)
	for _, a := range r.items {
		if match(a) {
			out = append(out, *cloneAsset(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out
}

func (r *memoryAssetRepo) ListByType(_ context.Context, assetType model.AssetType) ([]model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sortedDesc(func(a *model.Asset) bool {
		return a.AssetType == assetType
	}), nil
}

func (r *memoryAssetRepo) ListByScopeAndType(_ context.Context, assetType model.AssetType, contextID model.ContextID, scopeID model.ScopeID) ([]model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sortedDesc(func(a *model.Asset) bool {
		return a.AssetType == assetType && a.ContextID == contextID && a.ScopeID == scopeID
	}), nil
}

func (r *memoryAssetRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return 0, nil
	}
	for k, v := range fields {
		switch k {
		case "label":
			if s, ok := v.(string); ok {
				a.Label = s
			}
		case "metadata":
			if m, ok := v.(datatypes.JSON); ok {
				a.Metadata = m
			}
		case "cache":
			if m, ok := v.(datatypes.JSONMap); ok {
				a.Cache = m
			}
		}
	}
	a.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *memoryAssetRepo) TransferScope(_ context.Context, id uuid.UUID, contextID model.ContextID, scopeID model.ScopeID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return 0, nil
	}
	a.ContextID = contextID
	a.ScopeID = scopeID
	a.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *memoryAssetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	delete(r.seq, id)
	return nil
}

func (r *memoryAssetRepo) DeleteMany(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			delete(r.seq, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryAssetRepo) DeleteAllScoped(_ context.Context, contextID model.ContextID, scopeID model.ScopeID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, a := range r.items {
		if a.ContextID == contextID && a.ScopeID == scopeID {
			delete(r.items, id)
			delete(r.seq, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryAssetRepo) ListIDsByScope(_ context.Context, contextID model.ContextID, scopeID model.ScopeID, assetType *model.AssetType) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uuid.UUID, 0)
	for id, a := range r.items {
		if a.ContextID != contextID || a.ScopeID != scopeID {
			continue
		}
		if assetType != nil && a.AssetType != *assetType {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

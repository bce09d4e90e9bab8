package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/infra/queue"
	"github.com/memodb-io/assetd/internal/modules/model"
	"github.com/memodb-io/assetd/internal/modules/repo"
	"go.uber.org/zap"
)

// GCService reclaims assets no longer referenced by their owning domain
// object. The mark phase is external: the caller supplies the authoritative
// live-id set and this engine sweeps the complement within one partition.
type GCService interface {
	// SweepScope deletes every asset in (contextID, scopeID), optionally
	// narrowed to assetType, whose id is not in keepIDs, and returns the
	// number deleted. An empty keepIDs keeps nothing: the whole candidate
	// set is reclaimed.
	//
	// Caller contract: keepIDs must be recomputed after any add the caller
	// wants preserved, immediately before invoking the sweep. The engine
	// performs no temporal reconciliation, takes no scope lock, and is never
	// run on a schedule.
	SweepScope(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, assetType *model.AssetType, keepIDs []uuid.UUID) (int64, error)
}

type gcService struct {
	r   repo.AssetRepo
	log *zap.Logger
	mq  queue.Publisher
}

func NewGCService(r repo.AssetRepo, log *zap.Logger, mq queue.Publisher) GCService {
	return &gcService{r: r, log: log, mq: mq}
}

func (s *gcService) SweepScope(ctx context.Context, contextID model.ContextID, scopeID model.ScopeID, assetType *model.AssetType, keepIDs []uuid.UUID) (int64, error) {
	if assetType != nil && !assetType.Valid() {
		return 0, validationErr("asset_type", "must be IMAGE or AUDIO")
	}

	candidates, err := s.r.ListIDsByScope(ctx, contextID, scopeID, assetType)
	if err != nil {
		return 0, fmt.Errorf("list gc candidates: %w", err)
	}

	keep := make(map[uuid.UUID]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}

	// Keep ids outside the partition have no effect: only candidates are
	// ever deleted.
	unreferenced := make([]uuid.UUID, 0, len(candidates))
	for _, id := range candidates {
		if _, ok := keep[id]; !ok {
			unreferenced = append(unreferenced, id)
		}
	}

	if len(unreferenced) == 0 {
		return 0, nil
	}

	n, err := s.r.DeleteMany(ctx, unreferenced)
	if err != nil {
		return 0, fmt.Errorf("sweep scoped assets: %w", err)
	}

	s.log.Sugar().Infow("gc sweep",
		"context_id", contextID, "scope_id", scopeID,
		"candidates", len(candidates), "kept", len(candidates)-len(unreferenced), "deleted", n)

	s.mq.Publish(ctx, queue.EventAssetGCSwept, map[string]any{
		"context_id": contextID,
		"scope_id":   scopeID,
		"count":      n,
	})
	return n, nil
}

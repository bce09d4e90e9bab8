package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestAsset(t model.AssetType, contextID model.ContextID, scopeID model.ScopeID, createdAt time.Time) *model.Asset {
	return &model.Asset{
		ID:           uuid.New(),
		AssetType:    t,
		Label:        "test",
		MimeType:     "image/png",
		Base64:       "aGVsbG8=",
		OriginType:   model.OriginTypeUser,
		OriginSource: "upload",
		Metadata:     datatypes.JSON(`{"width":1,"height":1}`),
		ContextID:    contextID,
		ScopeID:      scopeID,
		CreatedAt:    createdAt,
	}
}

func TestMemoryAssetRepo_ListOrdering(t *testing.T) {
	r := NewMemoryAssetRepo()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	oldest := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, base)
	middle := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, base.Add(time.Minute))
	newest := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, base.Add(2*time.Minute))

	for _, a := range []*model.Asset{oldest, newest, middle} {
		assert.NoError(t, r.Create(ctx, a))
	}

	items, err := r.ListByType(ctx, model.AssetTypeImage)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, newest.ID, items[0].ID)
	assert.Equal(t, middle.ID, items[1].ID)
	assert.Equal(t, oldest.ID, items[2].ID)
}

func TestMemoryAssetRepo_ListOrderingTieBreak(t *testing.T) {
	r := NewMemoryAssetRepo()
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, at)
	second := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, at)

	assert.NoError(t, r.Create(ctx, first))
	assert.NoError(t, r.Create(ctx, second))

	items, err := r.ListByType(ctx, model.AssetTypeImage)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	// equal created_at: later insertion wins
	assert.Equal(t, second.ID, items[0].ID)
}

func TestMemoryAssetRepo_PartitionIsolation(t *testing.T) {
	r := NewMemoryAssetRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	chat := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, now)
	draw := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppDraw, now)
	assert.NoError(t, r.Create(ctx, chat))
	assert.NoError(t, r.Create(ctx, draw))

	items, err := r.ListByScopeAndType(ctx, model.AssetTypeImage, model.ContextGlobal, model.ScopeAppDraw)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, draw.ID, items[0].ID)

	n, err := r.DeleteAllScoped(ctx, model.ContextGlobal, model.ScopeAppDraw)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = r.GetByID(ctx, chat.ID)
	assert.NoError(t, err)
}

func TestMemoryAssetRepo_GetMissing(t *testing.T) {
	r := NewMemoryAssetRepo()

	_, err := r.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryAssetRepo_UpdateAndTransfer(t *testing.T) {
	r := NewMemoryAssetRepo()
	ctx := context.Background()
	a := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAttachmentDrafts, time.Now().UTC())
	assert.NoError(t, r.Create(ctx, a))

	n, err := r.Update(ctx, a.ID, map[string]any{"label": "renamed"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := r.GetByID(ctx, a.ID)
	assert.NoError(t, err)
	assert.Equal(t, "renamed", got.Label)

	n, err = r.TransferScope(ctx, a.ID, model.ContextGlobal, model.ScopeAppChat)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = r.GetByID(ctx, a.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.ScopeAppChat, got.ScopeID)

	// rows affected is zero for absent ids
	n, err = r.Update(ctx, uuid.New(), map[string]any{"label": "x"})
	assert.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.TransferScope(ctx, uuid.New(), model.ContextGlobal, model.ScopeAppChat)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryAssetRepo_DeleteMany(t *testing.T) {
	r := NewMemoryAssetRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	a := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, now)
	b := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, now)
	assert.NoError(t, r.Create(ctx, a))
	assert.NoError(t, r.Create(ctx, b))

	// count reflects only ids that actually existed
	n, err := r.DeleteMany(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = r.DeleteMany(ctx, nil)
	assert.NoError(t, err)
	assert.Zero(t, n)

	// deleting an absent id is not an error
	assert.NoError(t, r.Delete(ctx, a.ID))
}

func TestMemoryAssetRepo_ListIDsByScope(t *testing.T) {
	r := NewMemoryAssetRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	img := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppChat, now)
	aud := newTestAsset(model.AssetTypeAudio, model.ContextGlobal, model.ScopeAppChat, now)
	other := newTestAsset(model.AssetTypeImage, model.ContextGlobal, model.ScopeAppDraw, now)
	for _, a := range []*model.Asset{img, aud, other} {
		assert.NoError(t, r.Create(ctx, a))
	}

	ids, err := r.ListIDsByScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{img.ID, aud.ID}, ids)

	imgType := model.AssetTypeImage
	ids, err = r.ListIDsByScope(ctx, model.ContextGlobal, model.ScopeAppChat, &imgType)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{img.ID}, ids)
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/modules/model"
	"github.com/memodb-io/assetd/internal/modules/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The sweep tests run against the in-memory repository with real services,
// so they exercise the same wiring the ephemeral backend uses.

type gcFixture struct {
	assets AssetService
	gc     GCService
}

func newGCFixture() gcFixture {
	r := repo.NewMemoryAssetRepo()
	pub := &recordingPublisher{}
	return gcFixture{
		assets: NewAssetService(r, testLogger(), pub),
		gc:     NewGCService(r, testLogger(), pub),
	}
}

func (f gcFixture) add(t *testing.T, scope model.ScopeID) uuid.UUID {
	t.Helper()
	in := validAddInput()
	in.ScopeID = &scope
	id, err := f.assets.Add(context.Background(), in)
	require.NoError(t, err)
	return id
}

func (f gcFixture) scopedIDs(t *testing.T, scope model.ScopeID) []uuid.UUID {
	t.Helper()
	list, err := f.assets.ListByScopeAndType(context.Background(), model.AssetTypeImage, model.ContextGlobal, scope)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestSweepScope_KeepSubset(t *testing.T) {
	f := newGCFixture()
	ctx := context.Background()

	a := f.add(t, model.ScopeAppChat)
	b := f.add(t, model.ScopeAppChat)
	c := f.add(t, model.ScopeAppChat)

	n, err := f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil, []uuid.UUID{b})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = f.assets.Get(ctx, b)
	assert.NoError(t, err)
	for _, gone := range []uuid.UUID{a, c} {
		_, err = f.assets.Get(ctx, gone)
		assert.ErrorIs(t, err, ErrAssetNotFound)
	}
}

func TestSweepScope_EmptyKeepReclaimsAll(t *testing.T) {
	f := newGCFixture()
	ctx := context.Background()

	f.add(t, model.ScopeAppChat)
	f.add(t, model.ScopeAppChat)

	n, err := f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Empty(t, f.scopedIDs(t, model.ScopeAppChat))
}

func TestSweepScope_Idempotent(t *testing.T) {
	f := newGCFixture()
	ctx := context.Background()

	f.add(t, model.ScopeAppChat)
	keep := []uuid.UUID{f.add(t, model.ScopeAppChat)}

	n, err := f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil, keep)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Same sweep again reclaims nothing.
	n, err = f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil, keep)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Len(t, f.scopedIDs(t, model.ScopeAppChat), 1)
}

func TestSweepScope_PartitionIsolation(t *testing.T) {
	f := newGCFixture()
	ctx := context.Background()

	f.add(t, model.ScopeAppChat)
	draw := f.add(t, model.ScopeAppDraw)

	n, err := f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// The other partition is untouched.
	_, err = f.assets.Get(ctx, draw)
	assert.NoError(t, err)
}

func TestSweepScope_KeepIDsOutsidePartitionIgnored(t *testing.T) {
	f := newGCFixture()
	ctx := context.Background()

	chat := f.add(t, model.ScopeAppChat)
	draw := f.add(t, model.ScopeAppDraw)

	// Keeping an id that lives in another partition neither protects it
	// there nor changes what this partition reclaims.
	n, err := f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil, []uuid.UUID{draw})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.assets.Get(ctx, chat)
	assert.ErrorIs(t, err, ErrAssetNotFound)
	_, err = f.assets.Get(ctx, draw)
	assert.NoError(t, err)
}

func TestSweepScope_TypeFilter(t *testing.T) {
	f := newGCFixture()
	ctx := context.Background()

	img := f.add(t, model.ScopeAppChat)

	audioIn := AddAssetInput{
		AssetType: model.AssetTypeAudio,
		Label:     "clip.mp3",
		Data:      model.AssetData{MimeType: "audio/mpeg", Base64: "aGVsbG8="},
		Origin:    validAddInput().Origin,
		Metadata:  []byte(`{"duration":3.5,"sampleRate":44100}`),
	}
	audio, err := f.assets.Add(ctx, audioIn)
	require.NoError(t, err)

	at := model.AssetTypeAudio
	n, err := f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, &at, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.assets.Get(ctx, audio)
	assert.ErrorIs(t, err, ErrAssetNotFound)
	_, err = f.assets.Get(ctx, img)
	assert.NoError(t, err)
}

func TestSweepScope_InvalidTypeFilter(t *testing.T) {
	f := newGCFixture()

	at := model.AssetType("VIDEO")
	_, err := f.gc.SweepScope(context.Background(), model.ContextGlobal, model.ScopeAppChat, &at, nil)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSweepAfterTransfer(t *testing.T) {
	f := newGCFixture()
	ctx := context.Background()

	id := f.add(t, model.ScopeAppChat)
	require.NoError(t, f.assets.TransferScope(ctx, id, model.ContextGlobal, model.ScopeAppDraw))

	// The asset moved partitions; sweeping its old home is a no-op.
	n, err := f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = f.assets.Get(ctx, id)
	assert.NoError(t, err)
}

func TestDeleteThenSweep(t *testing.T) {
	f := newGCFixture()
	ctx := context.Background()

	id := f.add(t, model.ScopeAppChat)
	require.NoError(t, f.assets.Delete(ctx, id))
	// Deleting an already-gone asset is not an error.
	require.NoError(t, f.assets.Delete(ctx, id))

	n, err := f.gc.SweepScope(ctx, model.ContextGlobal, model.ScopeAppChat, nil, []uuid.UUID{id})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

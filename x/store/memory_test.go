package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ironfellow/companion/core"
)

func receive(t *testing.T, snapshots <-chan core.Snapshot) core.Snapshot {
	t.Helper()
	select {
	case snapshot := <-snapshots:
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return core.Snapshot{}
}

func TestMemoryStoreDocuments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Set(ctx, "campaigns/c1", json.RawMessage(`{"name":"Iron Vale","supply":5}`))
	assert.NoError(t, err)

	doc, err := store.Get(ctx, "/campaigns/c1")
	if assert.NoError(t, err) {
		assert.Equal(t, "/campaigns/c1", doc.Path)
		assert.JSONEq(t, `{"name":"Iron Vale","supply":5}`, string(doc.Data))
		assert.False(t, doc.CDate.IsZero())
	}

	err = store.Patch(ctx, "/campaigns/c1", core.SetField("supply", 3))
	assert.NoError(t, err)

	doc, err = store.Get(ctx, "/campaigns/c1")
	if assert.NoError(t, err) {
		assert.JSONEq(t, `{"name":"Iron Vale","supply":3}`, string(doc.Data))
	}

	err = store.Patch(ctx, "/campaigns/c2", core.SetField("supply", 3))
	assert.True(t, errors.Is(err, core.ErrorNotFound{}))

	err = store.Set(ctx, "/campaigns/c1", json.RawMessage(`[1,2]`))
	assert.True(t, errors.Is(err, core.ErrorValidation{}))

	err = store.Set(ctx, "/campaigns", json.RawMessage(`{}`))
	assert.True(t, errors.Is(err, core.ErrorValidation{}))

	assert.NoError(t, store.Delete(ctx, "/campaigns/c1"))
	assert.NoError(t, store.Delete(ctx, "/campaigns/c1"))

	_, err = store.Get(ctx, "/campaigns/c1")
	assert.True(t, errors.Is(err, core.ErrorNotFound{}))

	count, err := store.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.NoError(t, store.Set(ctx, "/campaigns/c1/notes/n2", json.RawMessage(`{"title":"b"}`)))
	assert.NoError(t, store.Set(ctx, "/campaigns/c1/notes/n1", json.RawMessage(`{"title":"a"}`)))
	assert.NoError(t, store.Set(ctx, "/campaigns/c2/notes/n3", json.RawMessage(`{"title":"c"}`)))
	assert.NoError(t, store.Set(ctx, "/campaigns/c1", json.RawMessage(`{"name":"x"}`)))

	docs, err := store.List(ctx, "/campaigns/c1/notes")
	if assert.NoError(t, err) && assert.Len(t, docs, 2) {
		assert.Equal(t, "/campaigns/c1/notes/n1", docs[0].Path)
		assert.Equal(t, "/campaigns/c1/notes/n2", docs[1].Path)
	}

	docs, err = store.List(ctx, "/campaigns/c9/notes")
	assert.NoError(t, err)
	assert.Empty(t, docs)

	_, err = store.List(ctx, "/campaigns/c1")
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
}

func TestMemoryStoreSubscribeDocument(t *testing.T) {
	store := NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	snapshots := make(chan core.Snapshot)
	done := make(chan error, 1)
	go func() {
		done <- store.Subscribe(ctx, "/characters/ch1", snapshots)
	}()

	first := receive(t, snapshots)
	assert.Equal(t, "/characters/ch1", first.Path)
	assert.False(t, first.Exists)

	assert.NoError(t, store.Set(context.Background(), "/characters/ch1", json.RawMessage(`{"name":"Kira"}`)))
	second := receive(t, snapshots)
	assert.True(t, second.Exists)
	if assert.Len(t, second.Documents, 1) {
		assert.JSONEq(t, `{"name":"Kira"}`, string(second.Documents[0].Data))
	}

	assert.NoError(t, store.Delete(context.Background(), "/characters/ch1"))
	third := receive(t, snapshots)
	assert.False(t, third.Exists)

	cancel()
	assert.NoError(t, <-done)
	assert.Equal(t, int64(0), store.GetMetrics()["listeners"])
}

func TestMemoryStoreSubscribeCollection(t *testing.T) {
	store := NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan core.Snapshot)
	go store.Subscribe(ctx, "/campaigns/c1/tracks", snapshots)

	first := receive(t, snapshots)
	assert.True(t, first.Exists)
	assert.Empty(t, first.Documents)

	assert.NoError(t, store.Set(context.Background(), "/campaigns/c1/tracks/t1", json.RawMessage(`{"label":"Reach the vault","value":0}`)))
	second := receive(t, snapshots)
	if assert.Len(t, second.Documents, 1) {
		assert.Equal(t, "/campaigns/c1/tracks/t1", second.Documents[0].Path)
	}

	assert.NoError(t, store.Patch(context.Background(), "/campaigns/c1/tracks/t1", core.SetField("value", 4)))
	third := receive(t, snapshots)
	if assert.Len(t, third.Documents, 1) {
		assert.JSONEq(t, `{"label":"Reach the vault","value":4}`, string(third.Documents[0].Data))
	}
}

package preview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStoreTakeRevokes(t *testing.T) {
	store := NewBlobStore(time.Minute)

	id := store.CreateObjectURL(NewHTMLBlob("<html></html>"))
	require.NotEmpty(t, id)
	assert.Equal(t, 1, store.Len())

	blob, ok := store.Take(id)
	require.True(t, ok)
	assert.Equal(t, "index.html", blob.Name)
	assert.Equal(t, "text/html", blob.Type)
	assert.Equal(t, "<html></html>", string(blob.Data))

	_, ok = store.Take(id)
	assert.False(t, ok, "object URL must not be usable twice")
	assert.Zero(t, store.Len())
}

func TestBlobStoreRevoke(t *testing.T) {
	store := NewBlobStore(time.Minute)
	id := store.CreateObjectURL(NewHTMLBlob("x"))

	store.RevokeObjectURL(id)

	_, ok := store.Take(id)
	assert.False(t, ok)
}

func TestBlobStoreExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewBlobStore(time.Minute)
	store.now = func() time.Time { return now }

	stale := store.CreateObjectURL(NewHTMLBlob("old"))
	now = now.Add(2 * time.Minute)
	fresh := store.CreateObjectURL(NewHTMLBlob("new"))

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	_, ok := store.Take(stale)
	assert.False(t, ok)
	_, ok = store.Take(fresh)
	assert.True(t, ok)
}

func TestBlobStoreTakeExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewBlobStore(time.Second)
	store.now = func() time.Time { return now }

	id := store.CreateObjectURL(NewHTMLBlob("x"))
	now = now.Add(time.Hour)

	_, ok := store.Take(id)
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestBlobStoreRunStopsWithContext(t *testing.T) {
	store := NewBlobStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- store.Run(ctx, 5*time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryStore_RoundTrip verifies set, get, overwrite and delete.
func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("test")

	_, found, err := store.Get(ctx, "ausente")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "chave", []byte("valor")))
	got, found, err := store.Get(ctx, "chave")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("valor"), got)

	require.NoError(t, store.Set(ctx, "chave", []byte("novo")))
	got, _, _ = store.Get(ctx, "chave")
	assert.Equal(t, []byte("novo"), got)

	require.NoError(t, store.Delete(ctx, "chave"))
	_, found, err = store.Get(ctx, "chave")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(ctx, "chave"))
}

// TestMemoryStore_CopiesValues verifies callers cannot mutate stored bytes
// through the slices they pass in or get back.
func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("test")

	original := []byte("valor")
	require.NoError(t, store.Set(ctx, "chave", original))
	original[0] = 'X'

	got, _, _ := store.Get(ctx, "chave")
	assert.Equal(t, []byte("valor"), got)

	got[0] = 'Y'
	again, _, _ := store.Get(ctx, "chave")
	assert.Equal(t, []byte("valor"), again)
}

// TestMemoryStore_Namespaces verifies two namespaces over the same process
// do not collide.
func TestMemoryStore_Namespaces(t *testing.T) {
	ctx := context.Background()
	first := NewMemoryStore("a")
	second := NewMemoryStore("b")

	require.NoError(t, first.Set(ctx, "chave", []byte("um")))
	_, found, err := second.Get(ctx, "chave")
	require.NoError(t, err)
	assert.False(t, found)
}

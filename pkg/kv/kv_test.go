package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethioagri/gebeya/pkg/kv"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemory_PutGetRoundTrip(t *testing.T) {
	store := kv.NewMemory()

	require.NoError(t, store.Put("rec", record{Name: "teff", Count: 3}))

	var got record
	require.True(t, store.Get("rec", &got))
	assert.Equal(t, record{Name: "teff", Count: 3}, got)
}

func TestMemory_GetMissingKey(t *testing.T) {
	store := kv.NewMemory()

	var got record
	assert.False(t, store.Get("absent", &got))
	assert.Zero(t, got)
}

func TestMemory_GetCorruptRecord(t *testing.T) {
	store := kv.NewMemory()
	store.PutRaw("rec", []byte("{not json"))

	var got record
	assert.False(t, store.Get("rec", &got), "corrupt data must read as a miss, not an error")
}

func TestMemory_PutOverwrites(t *testing.T) {
	store := kv.NewMemory()

	require.NoError(t, store.Put("rec", record{Name: "old"}))
	require.NoError(t, store.Put("rec", record{Name: "new"}))

	var got record
	require.True(t, store.Get("rec", &got))
	assert.Equal(t, "new", got.Name)
}

func TestMemory_DeleteIsIdempotent(t *testing.T) {
	store := kv.NewMemory()

	require.NoError(t, store.Put("rec", record{Name: "teff"}))
	require.NoError(t, store.Delete("rec"))
	require.NoError(t, store.Delete("rec"))

	var got record
	assert.False(t, store.Get("rec", &got))
}

func TestMemory_KeysFiltersByPrefix(t *testing.T) {
	store := kv.NewMemory()

	require.NoError(t, store.Put("farmer_products_1", []record{}))
	require.NoError(t, store.Put("farmer_products_2", []record{}))
	require.NoError(t, store.Put("authState", record{}))

	keys := store.Keys("farmer_products_")
	assert.ElementsMatch(t, []string{"farmer_products_1", "farmer_products_2"}, keys)

	assert.Empty(t, store.Keys("nothing_"))
}

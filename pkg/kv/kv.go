// Package kv is the key-value persistence layer behind the Gebeya stores.
//
// Every value is a JSON document addressed by a string key. The session
// store keeps one record under "authState"; the product store keeps one
// collection per farmer under "farmer_products_<id>". Catalog aggregation
// enumerates keys by prefix, so drivers must support Keys().
//
// Three drivers are available:
//   - "memory"   — in-process map; development and tests
//   - "redis"    — shared Redis instance
//   - "database" — single kv_records table via GORM (sqlite by default),
//     the durable default for a single-user installation
//
// Reads never fail: a missing, corrupt or unreachable value reports a miss
// and the caller falls back to its zero/default state.
//
// Usage:
//
//	store, err := kv.Open()
//	store.Put("authState", state)
//	var state models.AuthState
//	if !store.Get("authState", &state) { /* logged out */ }
package kv

import (
	"fmt"

	"github.com/ethioagri/gebeya/config"
)

// Store is the persistence capability injected into the session and
// product stores.
type Store interface {
	// Get reads the value under key and unmarshals it into dest.
	// Returns true on a hit; false on miss, corrupt data, or driver error.
	Get(key string, dest interface{}) bool

	// Put serialises value as JSON and overwrites the record under key.
	Put(key string, value interface{}) error

	// Delete removes the record under key. Deleting a missing key is a no-op.
	Delete(key string) error

	// Keys lists every key starting with prefix, in driver enumeration
	// order. Returns nil when the medium is unavailable.
	Keys(prefix string) []string
}

// Open builds the Store selected by KV_DRIVER.
func Open() (Store, error) {
	switch driver := config.KVDriver(); driver {
	case "memory":
		return NewMemory(), nil
	case "redis":
		return OpenRedis()
	case "database":
		return OpenDatabase()
	default:
		return nil, fmt.Errorf("kv: unsupported KV_DRIVER %q (supported: memory, redis, database)", driver)
	}
}

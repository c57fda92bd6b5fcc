package kv

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/ethioagri/gebeya/pkg/metrics"
)

// Memory is an in-process Store. Not durable across restarts; used in
// development and as the test double for the other drivers.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(key string, dest interface{}) bool {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		metrics.RecordKVMiss("memory")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.RecordKVMiss("memory")
		return false
	}

	metrics.RecordKVOp("memory", "get")
	return true
}

func (m *Memory) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()

	metrics.RecordKVOp("memory", "put")
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()

	metrics.RecordKVOp("memory", "delete")
	return nil
}

func (m *Memory) Keys(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// PutRaw stores bytes without JSON marshalling. Tests use it to simulate
// a corrupt record.
func (m *Memory) PutRaw(key string, raw []byte) {
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
}

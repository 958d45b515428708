// Package storage provides the durable local key-value surface that the
// state stores persist their snapshots into. Stores treat writes as
// fire-and-forget with last-write-wins semantics.
package storage

import "sync"

// KV is the persistence port. Each store serializes a subset of its state
// to JSON and stores it under a fixed key.
type KV interface {
	// Get returns the value for key, and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is an in-memory KV, used in tests and as a harmless default.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

// Get implements KV.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set implements KV.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove implements KV.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Discard is a KV that persists nothing.
type Discard struct{}

// Get implements KV.
func (Discard) Get(string) (string, bool, error) { return "", false, nil }

// Set implements KV.
func (Discard) Set(string, string) error { return nil }

// Remove implements KV.
func (Discard) Remove(string) error { return nil }

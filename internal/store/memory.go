package store

import (
	"fmt"
	"maps"
	"slices"
)

// Memory is a [Store] that keeps values in a map for the life of the process.
type Memory struct {
	values map[string][]byte
	closed bool
}

// NewMemory returns an empty [Memory] store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	if m.closed {
		return nil, ErrClosed
	}

	err := ValidateKey(key)
	if err != nil {
		return nil, err
	}

	value, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return slices.Clone(value), nil
}

func (m *Memory) Set(key string, value []byte) error {
	if m.closed {
		return ErrClosed
	}

	err := ValidateKey(key)
	if err != nil {
		return err
	}

	m.values[key] = slices.Clone(value)

	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	return slices.Sorted(maps.Keys(m.values))
}

func (m *Memory) Close() error {
	m.closed = true

	return nil
}

var _ Store = (*Memory)(nil)

package storage

//
// memory.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"maps"
	"sync"
)

type MemoryProvider struct {
	mu       sync.Mutex
	profiles map[string]*Memory
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		profiles: make(map[string]*Memory),
	}
}

func (m *MemoryProvider) Open(profileID string) Storage { //nolint:ireturn
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.profiles[profileID]
	if !ok {
		st = NewMemory()
		m.profiles[profileID] = st
	}

	return st
}

//------------------------------------------------------------------------------

// Memory is in-process storage.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]

	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

// Snapshot return copy of all values.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.data)
}

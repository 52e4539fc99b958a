package service

//
// services_support.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"maps"
	"slices"
	"sync"
)

// DynamicCache holds values and create it when no exist. Safe for concurrent use.
type DynamicCache[T comparable, V any] struct {
	mu      sync.Mutex
	items   map[T]V
	creator func(key T) V
}

func NewDynamicCache[T comparable, V any](creator func(key T) V) *DynamicCache[T, V] {
	return &DynamicCache[T, V]{
		items:   make(map[T]V),
		creator: creator,
	}
}

// GetOrCreate get value from cache or create it when no exists.
func (c *DynamicCache[T, V]) GetOrCreate(key T) V { //nolint:ireturn,nolintlint
	c.mu.Lock()
	defer c.mu.Unlock()

	if value, ok := c.items[key]; ok {
		return value
	}

	value := c.creator(key)
	c.items[key] = value

	return value
}

// Pop remove value from cache.
func (c *DynamicCache[T, V]) Pop(key T) (V, bool) { //nolint:ireturn,nolintlint
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.items[key]
	delete(c.items, key)

	return value, ok
}

// Drain remove and return all values.
func (c *DynamicCache[T, V]) Drain() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := slices.Collect(maps.Values(c.items))
	c.items = make(map[T]V)

	return values
}

func (c *DynamicCache[T, V]) Keys() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Collect(maps.Keys(c.items))
}

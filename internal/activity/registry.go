package activity

//
// registry.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"maps"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var activeMonitors = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "shopadmin_activity_monitors",
	Help: "Number of registered activity monitors.",
})

// Registry keep one monitor per profile.
type Registry struct {
	mu       sync.Mutex
	monitors map[string]*Monitor
}

func NewRegistry() *Registry {
	return &Registry{monitors: make(map[string]*Monitor)}
}

func (r *Registry) Get(profileID string) (*Monitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.monitors[profileID]

	return m, ok
}

// Put register monitor for profile; previous monitor is stopped.
func (r *Registry) Put(profileID string, mon *Monitor) {
	r.mu.Lock()
	prev := r.monitors[profileID]
	r.monitors[profileID] = mon
	r.updateGauge()
	r.mu.Unlock()

	if prev != nil && prev != mon {
		prev.Stop()
	}
}

// Remove and stop monitor for profile.
func (r *Registry) Remove(profileID string) {
	r.mu.Lock()
	mon := r.monitors[profileID]
	delete(r.monitors, profileID)
	r.updateGauge()
	r.mu.Unlock()

	if mon != nil {
		mon.Stop()
	}
}

// Sweep remove not running monitors; return number of removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0

	for id, mon := range r.monitors {
		if !mon.Running() {
			delete(r.monitors, id)

			removed++
		}
	}

	r.updateGauge()

	return removed
}

// Profiles return ids of profiles with registered monitor.
func (r *Registry) Profiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Sorted(maps.Keys(r.monitors))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.monitors)
}

// Shutdown stop and remove all monitors.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	monitors := slices.Collect(maps.Values(r.monitors))
	r.monitors = make(map[string]*Monitor)
	r.updateGauge()
	r.mu.Unlock()

	for _, mon := range monitors {
		mon.Stop()
	}
}

func (r *Registry) updateGauge() {
	activeMonitors.Set(float64(len(r.monitors)))
}

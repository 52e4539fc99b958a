package auth

//
// navigator.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "sync"

type Navigator interface {
	Navigate(path string)
}

// RedirectRecorder remember last requested navigation; http handler use it to
// send redirect.
type RedirectRecorder struct {
	mu   sync.Mutex
	path string
}

func (r *RedirectRecorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.path = path
}

// Pending return requested path or empty string.
func (r *RedirectRecorder) Pending() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.path
}

type NopNavigator struct{}

func (NopNavigator) Navigate(string) {}

package cli

//
// workers_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"gitlab.com/kabes/go-shopadmin/internal/assert"
)

func TestNextDailyRun(t *testing.T) {
	next := nextDailyRun(4)

	before := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, next(before), time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC))

	exact := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	assert.Equal(t, next(exact), time.Date(2025, 3, 11, 4, 0, 0, 0, time.UTC))

	after := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, next(after), time.Date(2026, 1, 1, 4, 0, 0, 0, time.UTC))
}

func TestRunPeriodicStopOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	var calls atomic.Int32

	done := make(chan struct{})

	go func() {
		defer close(done)

		runPeriodic(ctx, "test", nextTick(time.Millisecond), func(context.Context) {
			if calls.Add(1) == 3 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker not stopped")
	}

	assert.True(t, calls.Load() >= 3)
}

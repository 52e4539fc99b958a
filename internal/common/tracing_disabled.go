//go:build !trace

package common

//
// tracing_disabled.go
// Copyright (C) 2026 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "context"

const TracingAvailable = false

func TraceLazyPrintf(_ context.Context, _ string, _ ...any) {}

func TraceErrorLazyPrintf(_ context.Context, _ string, _ ...any) {}

type EventLog struct{}

func StartEventLog(ctx context.Context, _, _ string) (context.Context, *EventLog) {
	return ctx, nil
}

func EventLogFromContext(_ context.Context) *EventLog { return nil }

func (*EventLog) Printf(_ string, _ ...any) {}

func (*EventLog) Errorf(_ string, _ ...any) {}

func (*EventLog) Close() {}

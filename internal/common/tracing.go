//go:build trace

package common

//
// tracing.go
// Copyright (C) 2026 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"runtime/trace"
	"strings"

	xtrace "golang.org/x/net/trace"
)

const TracingAvailable = true

// TraceLazyPrintf add message to runtime trace and x/net/trace of request.
// Text before first colon in format is used as runtime trace category.
func TraceLazyPrintf(ctx context.Context, format string, a ...any) {
	traceLog(ctx, false, format, a)
}

// TraceErrorLazyPrintf is TraceLazyPrintf that also mark request trace as failed.
func TraceErrorLazyPrintf(ctx context.Context, format string, a ...any) {
	traceLog(ctx, true, format, a)
}

func traceLog(ctx context.Context, isErr bool, format string, args []any) {
	if trace.IsEnabled() {
		category, _, _ := strings.Cut(format, ":")
		if isErr {
			category = strings.TrimSpace("error " + category)
		}

		trace.Logf(ctx, category, format, args...)
	}

	tr, ok := xtrace.FromContext(ctx)
	if !ok || tr == nil {
		return
	}

	tr.LazyPrintf(format, args...)

	if isErr {
		tr.SetError()
	}
}

//-------------------------------------------------------------

// EventLog is x/net/trace event log of long running worker. Methods are nil-safe.
type EventLog struct {
	events xtrace.EventLog
}

type eventLogKey struct{}

// StartEventLog create event log for worker and put it into context.
func StartEventLog(ctx context.Context, family, title string) (context.Context, *EventLog) {
	el := &EventLog{xtrace.NewEventLog(family, title)}

	return context.WithValue(ctx, eventLogKey{}, el), el
}

// EventLogFromContext return event log from context or nil.
func EventLogFromContext(ctx context.Context) *EventLog {
	el, _ := ctx.Value(eventLogKey{}).(*EventLog)

	return el
}

func (e *EventLog) Printf(format string, a ...any) {
	if e != nil {
		e.events.Printf(format, a...)
	}
}

func (e *EventLog) Errorf(format string, a ...any) {
	if e != nil {
		e.events.Errorf(format, a...)
	}
}

func (e *EventLog) Close() {
	if e != nil {
		e.events.Finish()
	}
}

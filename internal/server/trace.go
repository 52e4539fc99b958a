//go:build trace

package server

//
// trace.go
// Copyright (C) 2026 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime/pprof"
	"runtime/trace"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	xtrace "golang.org/x/net/trace"
)

// newTracingMiddleware start x/net/trace for each request and label goroutine
// with request id for profiles.
func newTracingMiddleware(cfg *config.ServerConf) func(http.Handler) http.Handler {
	xtrace.AuthRequest = cfg.AuthMgmtRequest

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipLogRequest(r) {
				next.ServeHTTP(w, r)

				return
			}

			ctx := r.Context()
			reqID := requestID(ctx)

			pprof.Do(ctx, pprof.Labels(common.LogKeyReqID, reqID), func(ctx context.Context) {
				tr := xtrace.New("server", r.Method+" "+r.URL.Path)
				defer tr.Finish()

				tr.LazyPrintf("req_id=%s remote=%s", reqID, r.RemoteAddr)

				next.ServeHTTP(w, r.WithContext(xtrace.NewContext(ctx, tr)))
			})
		})
	}
}

func mountXTrace(r chi.Router, webroot string) {
	r.Get(webroot+"/debug/requests", xtrace.Traces)
	r.Get(webroot+"/debug/events", xtrace.Events)
}

//-------------------------------------------------------------

const (
	slowRequestThreshold = 200 * time.Millisecond
	flightRecorderBytes  = 1 << 20
)

// flightRecorder keep last runtime trace in memory and dump it once, on first
// request slower than threshold.
type flightRecorder struct {
	fr   *trace.FlightRecorder
	done atomic.Bool
}

func newFRMiddleware() func(http.Handler) http.Handler {
	rec := &flightRecorder{
		fr: trace.NewFlightRecorder(trace.FlightRecorderConfig{
			MinAge:   slowRequestThreshold,
			MaxBytes: flightRecorderBytes,
		}),
	}

	if err := rec.fr.Start(); err != nil {
		log.Logger.Error().Err(err).Msg("FlightRecorder: start failed")

		return func(next http.Handler) http.Handler { return next }
	}

	log.Logger.Warn().Msgf("FlightRecorder: enabled threshold=%s", slowRequestThreshold)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			if time.Since(start) > slowRequestThreshold && !rec.done.Load() {
				go rec.snapshot(requestID(r.Context()))
			}
		})
	}
}

func (f *flightRecorder) snapshot(reqID string) {
	if !f.done.CompareAndSwap(false, true) {
		return
	}

	defer f.fr.Stop()

	logger := log.Logger.With().Str(common.LogKeyReqID, reqID).Logger()
	fname := filepath.Join(os.TempDir(),
		fmt.Sprintf("shopadmin-%s-%s.trace", time.Now().Format("20060102T150405"), reqID))

	out, err := os.Create(fname)
	if err != nil {
		logger.Error().Err(err).Msgf("FlightRecorder: create file=%q failed", fname)

		return
	}
	defer out.Close()

	if _, err := f.fr.WriteTo(out); err != nil {
		logger.Error().Err(err).Msgf("FlightRecorder: write file=%q failed", fname)

		return
	}

	logger.Warn().Msgf("FlightRecorder: slow request snapshot saved file=%q", fname)
}

func requestID(ctx context.Context) string {
	if id, ok := hlog.IDFromCtx(ctx); ok {
		return id.String()
	}

	return "-"
}

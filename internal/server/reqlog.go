package server

//
// reqlog.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/common"
)

//nolint:gochecknoglobals
var (
	skipLogPaths     = []string{"/metrics", "/debug/", "/static/"}
	redactedHeaders  = []string{"Authorization", "Cookie", "Set-Cookie"}
	redactedBodyPost = []string{"/login", "/user/password"}
)

// newRequestLogMiddleware log start and end of each request with request-scoped
// logger put into context. With `withBodies` also headers and bodies are logged
// (at debug level, with credentials redacted).
func newRequestLogMiddleware(withBodies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID, _ := hlog.IDFromCtx(r.Context())
			logger := log.With().Str(common.LogKeyReqID, reqID.String()).Logger()
			r = r.WithContext(logger.WithContext(r.Context()))

			if shouldSkipLogRequest(r) {
				next.ServeHTTP(w, r)

				return
			}

			start := time.Now()
			startEv := logger.Info().
				Str("method", r.Method).
				Str("url", r.URL.Redacted()).
				Str("remote", r.RemoteAddr)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			var reqBody, respBody bytes.Buffer

			if withBodies {
				startEv = startEv.Interface(common.LogKeyRequestHeaders, redactHeaders(r.Header))
				r.Body = io.NopCloser(io.TeeReader(r.Body, &reqBody))

				ww.Tee(&respBody)
			}

			startEv.Msg("Server: request start")

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				if withBodies {
					logger.Debug().
						Str("request_body", redactBody(r, reqBody.String())).
						Str("response_body", respBody.String()).
						Interface(common.LogKeyResponseHeaders, redactHeaders(ww.Header())).
						Msg("Server: request data")
				}

				logger.WithLevel(statusLogLevel(status)).
					Str("method", r.Method).
					Str("uri", r.RequestURI).
					Int("status", status).
					Int("size", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Msg("Server: request finished")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// newMgmtLogMiddleware log finished management requests at debug level.
func newMgmtLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Logger.Debug().
			Str("url", r.URL.Redacted()).
			Str("remote", r.RemoteAddr).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("MgmtServer: request finished")
	})
}

func statusLogLevel(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest && status != http.StatusNotFound:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func shouldSkipLogRequest(r *http.Request) bool {
	for _, p := range skipLogPaths {
		if strings.Contains(r.URL.Path, p) {
			return true
		}
	}

	return false
}

func redactHeaders(headers http.Header) http.Header {
	res := headers.Clone()

	for _, key := range redactedHeaders {
		if _, ok := res[key]; ok {
			res.Set(key, "***")
		}
	}

	return res
}

// redactBody hide content of forms with passwords.
func redactBody(r *http.Request, body string) string {
	if r.Method != http.MethodPost {
		return body
	}

	for _, suffix := range redactedBodyPost {
		if strings.HasSuffix(r.URL.Path, suffix) {
			return "***"
		}
	}

	return body
}

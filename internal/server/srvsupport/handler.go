// Package srvsupport contain helpers shared by web and api handlers.
package srvsupport

//
// handler.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"net"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// HandlerFunc is http handler that get request context and logger tagged
// with handler name.
type HandlerFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request, logger *zerolog.Logger)

// WrapNamed adapt HandlerFunc to http.HandlerFunc.
func WrapNamed(handler HandlerFunc, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := hlog.FromRequest(r).With().Str("handler", name).Logger()
		ctx := logger.WithContext(r.Context())

		handler(ctx, w, r.WithContext(ctx), &logger)
	}
}

// ClientAddress return host part of request remote address (set by RealIP
// middleware when behind proxy).
func ClientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

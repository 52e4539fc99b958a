// Package guard decide, before page handlers run, whether request may proceed
// or should be redirected to login page or dashboard.
package guard

//
// guard.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/hlog"
)

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
	Skip
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case Skip:
		return "skip"
	}

	return "unknown"
}

//nolint:gochecknoglobals
var guardDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shopadmin_guard_decisions_total",
		Help: "Number of route guard decisions.",
	},
	[]string{"decision"},
)

//------------------------------------------------------------------------------

type Config struct {
	ProtectedRoutes []string
	AuthRoutes      []string
	// SkipPrefixes are never checked (api, static assets).
	SkipPrefixes  []string
	LoginPath     string
	HomePath      string
	CookieName    string
	RedirectParam string
}

func DefaultConfig() Config {
	return Config{
		ProtectedRoutes: []string{
			"/", "/productos", "/pedidos", "/usuarios", "/resenas", "/configuracion", "/inventario",
		},
		AuthRoutes:    []string{"/login", "/recuperar-password", "/restablecer-password"},
		SkipPrefixes:  []string{"/api", "/static", "/public", "/favicon.ico"},
		LoginPath:     "/login",
		HomePath:      "/",
		CookieName:    "adminToken",
		RedirectParam: "redirect",
	}
}

// WithPrefix return copy of configuration with all paths mounted under `prefix`.
// Root path "/" become the prefix itself.
func (c Config) WithPrefix(prefix string) Config {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return c
	}

	join := func(path string) string {
		if path == "/" {
			return prefix
		}

		return prefix + path
	}

	joinAll := func(paths []string) []string {
		res := make([]string, 0, len(paths))
		for _, p := range paths {
			res = append(res, join(p))
		}

		return res
	}

	c.ProtectedRoutes = joinAll(c.ProtectedRoutes)
	c.AuthRoutes = joinAll(c.AuthRoutes)
	c.SkipPrefixes = joinAll(c.SkipPrefixes)
	c.LoginPath = join(c.LoginPath)
	c.HomePath = join(c.HomePath)

	return c
}

// Guard check presence of session token for protected and auth routes.
type Guard struct {
	cfg Config
}

func New(cfg Config) *Guard {
	return &Guard{cfg: cfg}
}

// Decide what to do with request.
func (g *Guard) Decide(r *http.Request) Decision {
	path := r.URL.Path

	if matchAny(path, g.cfg.SkipPrefixes) {
		return Skip
	}

	hasToken := g.token(r) != ""

	// auth routes first; with prefix the root route covers whole subtree
	switch {
	case matchAny(path, g.cfg.AuthRoutes):
		if hasToken {
			return RedirectHome
		}
	case matchAny(path, g.cfg.ProtectedRoutes):
		if !hasToken {
			return RedirectLogin
		}
	}

	return Allow
}

// Middleware apply decisions for each request.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := g.Decide(r)
		guardDecisions.WithLabelValues(decision.String()).Inc()

		switch decision {
		case RedirectLogin:
			target := g.LoginURL(r.URL.Path)
			hlog.FromRequest(r).Debug().Msgf("Guard: no token; redirect to %q", target)
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)

		case RedirectHome:
			hlog.FromRequest(r).Debug().Msg("Guard: already logged in; redirect to home")
			http.Redirect(w, r, g.cfg.HomePath, http.StatusTemporaryRedirect)

		case Allow, Skip:
			next.ServeHTTP(w, r)
		}
	})
}

// LoginURL return url of login page with return path.
func (g *Guard) LoginURL(returnPath string) string {
	query := url.Values{}
	query.Set(g.cfg.RedirectParam, returnPath)

	return g.cfg.LoginPath + "?" + query.Encode()
}

func (g *Guard) token(r *http.Request) string {
	if c, err := r.Cookie(g.cfg.CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func matchAny(path string, routes []string) bool {
	for _, route := range routes {
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}

	return false
}

package guard

//
// guard_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitlab.com/kabes/go-shopadmin/internal/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		path     string
		cookie   string
		header   string
		expected Decision
	}{
		{"/productos", "", "", RedirectLogin},
		{"/productos/12/edit", "", "", RedirectLogin},
		{"/productos", "tok", "", Allow},
		{"/productos", "", "Bearer tok", Allow},
		{"/productos", "", "Bearer ", RedirectLogin},
		{"/", "", "", RedirectLogin},
		{"/", "tok", "", Allow},
		{"/inventario", "", "", RedirectLogin},
		{"/login", "tok", "", RedirectHome},
		{"/login", "", "Bearer tok", RedirectHome},
		{"/login", "", "", Allow},
		{"/recuperar-password", "", "", Allow},
		{"/restablecer-password/abc", "tok", "", RedirectHome},
		{"/api/anything", "", "", Skip},
		{"/api/session/status", "tok", "", Skip},
		{"/static/app.css", "", "", Skip},
		{"/favicon.ico", "", "", Skip},
		{"/productosx", "", "", Allow},
		{"/other", "", "", Allow},
	}

	guard := New(DefaultConfig())

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "adminToken", Value: tt.cookie})
			}

			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			assert.Equal(t, guard.Decide(req), tt.expected)
		})
	}
}

func TestMiddleware(t *testing.T) {
	guard := New(DefaultConfig())
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := guard.Middleware(next)

	tests := []struct {
		path     string
		cookie   string
		status   int
		location string
	}{
		{"/productos", "", http.StatusTemporaryRedirect, "/login?redirect=%2Fproductos"},
		{"/login", "tok", http.StatusTemporaryRedirect, "/"},
		{"/login", "", http.StatusTeapot, ""},
		{"/api/anything", "", http.StatusTeapot, ""},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "adminToken", Value: tt.cookie})
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, rec.Code, tt.status)
			assert.Equal(t, rec.Header().Get("Location"), tt.location)
		})
	}
}

func TestLoginURL(t *testing.T) {
	guard := New(DefaultConfig())
	assert.Equal(t, guard.LoginURL("/productos"), "/login?redirect=%2Fproductos")
}

func TestWithPrefix(t *testing.T) {
	guard := New(DefaultConfig().WithPrefix("/admin/"))

	tests := []struct {
		path     string
		token    bool
		decision Decision
	}{
		{"/admin", false, RedirectLogin},
		{"/admin/productos", false, RedirectLogin},
		{"/admin/login", false, Allow},
		{"/admin/login", true, RedirectHome},
		{"/admin/api/session/status", false, Skip},
		{"/admin/static/app.js", false, Skip},
		{"/admin/productos", true, Allow},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token {
				req.AddCookie(&http.Cookie{Name: "adminToken", Value: "tok"})
			}

			assert.Equal(t, guard.Decide(req), tt.decision)
		})
	}

	assert.Equal(t, guard.LoginURL("/admin/pedidos"), "/admin/login?redirect=%2Fadmin%2Fpedidos")
	assert.Equal(t, DefaultConfig().WithPrefix("").LoginPath, "/login")
}

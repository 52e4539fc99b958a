package auth

//
// cookies.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/http"
	"time"
)

// TokenCookieName is name of cookie mirroring session token for route guard.
const TokenCookieName = "adminToken"

// CookieJar keep session token cookie.
type CookieJar interface {
	HasToken() bool
	SetToken(token string, maxAge time.Duration)
	ClearToken()
}

// HTTPCookieJar manage token cookie on http request/response.
type HTTPCookieJar struct {
	w      http.ResponseWriter
	hasTok bool
	secure bool
}

func NewHTTPCookieJar(w http.ResponseWriter, r *http.Request, secure bool) *HTTPCookieJar {
	c, err := r.Cookie(TokenCookieName)

	return &HTTPCookieJar{
		w:      w,
		hasTok: err == nil && c.Value != "",
		secure: secure,
	}
}

func (h *HTTPCookieJar) HasToken() bool {
	return h.hasTok
}

func (h *HTTPCookieJar) SetToken(token string, maxAge time.Duration) {
	//nolint:exhaustruct,gosec
	http.SetCookie(h.w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secure,
	})

	h.hasTok = true
}

func (h *HTTPCookieJar) ClearToken() {
	//nolint:exhaustruct,gosec
	http.SetCookie(h.w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secure,
	})

	h.hasTok = false
}

// NopCookieJar is used by tabs without http response.
type NopCookieJar struct{}

func (NopCookieJar) HasToken() bool                { return false }
func (NopCookieJar) SetToken(string, time.Duration) {}
func (NopCookieJar) ClearToken()                   {}

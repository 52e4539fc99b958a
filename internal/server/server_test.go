package server

//
// server_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/api"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/bus"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/infra"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
	"gitlab.com/kabes/go-shopadmin/internal/service"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
	"gitlab.com/kabes/go-shopadmin/internal/web"
)

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()

	req.RemoteAddr = "127.0.0.1:4000"
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
		} else {
			c.cookies[cookie.Name] = cookie
		}
	}

	return rec
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	c.t.Helper()

	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func TestServerRoutes(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := log.Logger.WithContext(context.Background())
	i := do.New(Package, web.Package, api.Package, service.Package, infra.Package, storage.Package, bus.Package)

	do.ProvideValue(i, config.NewDBConfig("sqlite3", ":memory:"))
	do.ProvideValue(i, &config.ServerConf{
		MainServer:   config.ListenConf{Address: "127.0.0.1:0"},
		ProfileStore: "memory",
	})
	do.ProvideNamedValue(i, "server.webroot", "")
	do.ProvideValue(i, &config.SessionConf{
		Storage:         config.StorageMemory,
		Bus:             config.BusLocal,
		Verifier:        config.VerifierStatic,
		StaticEmail:     "admin@example.com",
		StaticPassword:  "admin123",
		TokenSecret:     "0123456789abcdef0123456789abcdef",
		TokenTTL:        time.Hour,
		MaxInactiveTime: 30 * time.Minute,
		WarningTime:     5 * time.Minute,
		CheckInterval:   time.Hour,
		LoginRate:       1,
		LoginBurst:      5,
	})

	database := do.MustInvoke[repository.Database](i)
	assert.NoErr(t, database.Open(ctx))
	assert.NoErr(t, database.Migrate(ctx))

	t.Cleanup(func() {
		_ = i.Shutdown()
	})

	srv := do.MustInvoke[*Server](i)
	client := &testClient{t: t, handler: srv.Handler(), cookies: make(map[string]*http.Cookie)}

	rec := client.get("/ping")
	assert.Equal(t, rec.Code, http.StatusOK)

	rec = client.get("/favicon.ico")
	assert.Equal(t, rec.Code, http.StatusNoContent)

	rec = client.get("/productos")
	assert.Equal(t, rec.Code, http.StatusTemporaryRedirect)
	assert.Equal(t, rec.Header().Get("Location"), "/login?redirect=%2Fproductos")
	assert.True(t, client.cookies[ProfileCookieName] != nil)

	rec = client.get("/api/session/status")
	assert.Equal(t, rec.Code, http.StatusUnauthorized)

	rec = client.get("/login")
	assert.Equal(t, rec.Code, http.StatusOK)

	form := url.Values{}
	form.Set("email", "admin@example.com")
	form.Set("password", "admin123")
	form.Set("redirect", "/productos")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec = client.do(req)
	assert.Equal(t, rec.Code, http.StatusSeeOther)
	assert.Equal(t, rec.Header().Get("Location"), "/productos")
	assert.True(t, client.cookies[auth.TokenCookieName] != nil)

	rec = client.get("/productos")
	assert.Equal(t, rec.Code, http.StatusOK)

	// logged-in user is sent from login page to dashboard
	rec = client.get("/login")
	assert.Equal(t, rec.Code, http.StatusTemporaryRedirect)
	assert.Equal(t, rec.Header().Get("Location"), "/")

	rec = client.get("/api/session/status")
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `"state":"active"`)
	assert.Equal(t, rec.Header().Get("Cache-Control"), "no-cache, no-store, no-transform, must-revalidate, private, max-age=0")

	rec = client.do(httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, rec.Code, http.StatusSeeOther)
	assert.Equal(t, rec.Header().Get("Location"), "/login")
	assert.True(t, client.cookies[auth.TokenCookieName] == nil)

	rec = client.get("/")
	assert.Equal(t, rec.Code, http.StatusTemporaryRedirect)
}

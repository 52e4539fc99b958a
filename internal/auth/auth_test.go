package auth

//
// auth_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitlab.com/kabes/go-shopadmin/internal/assert"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

func TestStaticVerifier(t *testing.T) {
	tests := []struct {
		email    string
		password string
		valid    bool
	}{
		{"admin@tienda.com", "admin123", true},
		{"ADMIN@tienda.com", "admin123", true},
		{"admin@tienda.com", "admin1234", false},
		{"other@tienda.com", "admin123", false},
		{"", "", false},
	}

	verifier := NewStaticVerifier(DefaultStaticEmail, DefaultStaticPassword)

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			ident, err := verifier.Verify(context.Background(), tt.email, tt.password)
			assert.NoErr(t, err)
			assert.Equal(t, ident != nil, tt.valid)
		})
	}
}

type fakeChecker struct {
	user *model.User
	err  error
}

func (f fakeChecker) CheckUser(context.Context, string, string) (*model.User, error) {
	return f.user, f.err
}

func TestUsersVerifier(t *testing.T) {
	ctx := context.Background()

	ident, err := NewUsersVerifier(fakeChecker{user: &model.User{ID: 12, Email: "a@b.c", Name: "A"}}).
		Verify(ctx, "a@b.c", "x")
	assert.NoErr(t, err)
	assert.Equal(t, ident, &model.Identity{ID: "12", Email: "a@b.c", Name: "A", Role: model.RoleAdmin})

	for _, rejected := range []error{common.ErrUnauthorized, common.ErrUnknownUser, common.ErrUserAccountLocked} {
		ident, err = NewUsersVerifier(fakeChecker{err: rejected}).Verify(ctx, "a@b.c", "x")
		assert.NoErr(t, err)
		assert.True(t, ident == nil)
	}

	dberr := errors.New("database is locked")
	_, err = NewUsersVerifier(fakeChecker{err: dberr}).Verify(ctx, "a@b.c", "x")
	assert.ErrSpec(t, err, dberr)
}

func TestJWTMinter(t *testing.T) {
	minter := NewJWTMinter("0123456789abcdef0123", time.Hour)
	ident := &model.Identity{ID: "1", Email: "admin@tienda.com", Role: "admin"}

	token1, err := minter.Mint(context.Background(), ident)
	assert.NoErr(t, err)

	token2, err := minter.Mint(context.Background(), ident)
	assert.NoErr(t, err)
	assert.NotEqual(t, token1, token2)

	sub, err := minter.Parse(token1)
	assert.NoErr(t, err)
	assert.Equal(t, sub, "1")

	_, err = NewJWTMinter("other-secret-0123456789", time.Hour).Parse(token1)
	assert.Err(t, err)

	// expired
	minter.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = minter.Parse(token1)
	assert.Err(t, err)
}

func TestHTTPCookieJar(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	jar := NewHTTPCookieJar(rec, req, false)
	assert.True(t, !jar.HasToken())

	jar.SetToken("tok", DefaultTokenTTL)
	assert.True(t, jar.HasToken())

	jar.ClearToken()
	assert.True(t, !jar.HasToken())

	cookies := rec.Result().Cookies()
	assert.Equal(t, len(cookies), 2)
	assert.Equal(t, cookies[0].Name, TokenCookieName)
	assert.Equal(t, cookies[0].Value, "tok")
	assert.Equal(t, cookies[0].Path, "/")
	assert.Equal(t, cookies[0].MaxAge, 86400)
	assert.True(t, !cookies[0].HttpOnly)
	assert.Equal(t, cookies[1].MaxAge, -1)

	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "tok"})
	assert.True(t, NewHTTPCookieJar(httptest.NewRecorder(), req, false).HasToken())
}

func TestLoginLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewLoginLimiter(1, 2)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, !limiter.Allow("10.0.0.1"))
	// other client has own bucket
	assert.True(t, limiter.Allow("10.0.0.2"))

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"))

	now = now.Add(time.Hour)
	assert.Equal(t, limiter.Cleanup(time.Minute), 2)
}

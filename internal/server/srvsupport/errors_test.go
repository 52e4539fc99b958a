package srvsupport

//
// errors_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/common"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not logged", aerr.Wrapf(common.ErrNotLoggedIn, "status"), http.StatusUnauthorized},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"rate", common.ErrRateLimited, http.StatusTooManyRequests},
		{"storage", aerr.ApplyFor(aerr.ErrStorage, errors.New("down")), http.StatusServiceUnavailable},
		{"database", aerr.ApplyFor(aerr.ErrDatabase, errors.New("locked")), http.StatusInternalServerError},
		{"validation", common.ErrNoProfile, http.StatusBadRequest},
		{"plain", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ErrorStatus(tt.err), tt.status)
		})
	}
}

func TestCheckAndWriteErrorJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/session/extend", nil)
	req.Header.Set("Accept", "application/json")

	rec := httptest.NewRecorder()
	CheckAndWriteError(rec, req, aerr.Wrapf(common.ErrNotLoggedIn, "extend"))

	assert.Equal(t, rec.Code, http.StatusUnauthorized)
	assert.Equal(t, rec.Header().Get("Content-Type"), "application/json; charset=utf-8")
	assert.Equal(t, rec.Body.String(), `{"error":"session expired, please log in again"}`+"\n")
}

func TestWriteErrorPlain(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "")

	assert.Equal(t, rec.Code, http.StatusBadRequest)
	assert.Contains(t, rec.Body.String(), "Bad Request")
}

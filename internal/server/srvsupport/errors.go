package srvsupport

//
// errors.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError write error as json for api clients or plain text otherwise.
// Empty `msg` is replaced by status text.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if msg == "" {
		msg = http.StatusText(code)
	}

	if wantsJSON(r) {
		render.Status(r, code)
		RenderJSON(w, r, errorResponse{msg})

		return
	}

	http.Error(w, msg, code)
}

// tagStatus map error tags to http status; first match win.
//
//nolint:gochecknoglobals
var tagStatus = []struct {
	tag    string
	status int
}{
	{aerr.StorageError, http.StatusServiceUnavailable},
	{aerr.InternalError, http.StatusInternalServerError},
	{aerr.ValidationError, http.StatusBadRequest},
	{aerr.DataError, http.StatusBadRequest},
}

// CheckAndWriteError write response matching to `err`; only user messages
// are exposed to client.
func CheckAndWriteError(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, r, ErrorStatus(err), aerr.GetUserMessage(err))
}

// ErrorStatus return http status code for error.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrNotLoggedIn), auth.IsInvalidCredentials(err):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrRateLimited):
		return http.StatusTooManyRequests
	}

	for _, ts := range tagStatus {
		if aerr.HasTag(err, ts.tag) {
			return ts.status
		}
	}

	return http.StatusInternalServerError
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

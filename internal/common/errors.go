package common

//
// Common application errors
//
// errors.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"

	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

var (
	ErrUnauthorized      = aerr.New("unauthorized").WithUserMsg("authorization failed")
	ErrUserAccountLocked = aerr.New("locked account").WithUserMsg("account is locked")
)

// Validation errors.
var (
	ErrUnknownUser  = aerr.New("unknown user").WithTag(aerr.ValidationError)
	ErrEmptyEmail   = aerr.New("email can't be empty").WithTag(aerr.ValidationError)
	ErrUserExists   = aerr.New("user exists").WithUserMsg("user with this email already exists")
	ErrInvalidUser  = aerr.New("invalid user").WithTag(aerr.ValidationError)
	ErrNoProfile    = aerr.New("missing profile").WithTag(aerr.ValidationError)
	ErrNotLoggedIn  = aerr.New("not authenticated").WithUserMsg("session expired, please log in again")
	ErrRateLimited  = aerr.New("too many requests").WithUserMsg("too many login attempts, try again later")
	ErrUnknownEvent = aerr.New("unknown activity event").WithTag(aerr.ValidationError)
)

var ErrNoData = errors.New("no result")

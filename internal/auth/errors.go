package auth

//
// errors.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "gitlab.com/kabes/go-shopadmin/internal/aerr"

var (
	ErrInvalidCredentials = aerr.New("invalid credentials").
				WithTag(aerr.ValidationError).
				WithUserMsg("invalid email or password")
	ErrVerifierUnavailable = aerr.New("credential verifier unavailable").
				WithTag(aerr.InternalError).
				WithUserMsg("login service unavailable, try again later")
)

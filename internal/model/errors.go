package model

//
// errors.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "gitlab.com/kabes/go-shopadmin/internal/aerr"

var (
	ErrInvalidIdentity = aerr.New("invalid identity - missing id").WithTag(aerr.DataError)
	ErrInvalidLogs     = aerr.New("invalid session logs").WithTag(aerr.DataError)
)

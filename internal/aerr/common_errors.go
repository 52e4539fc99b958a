package aerr

// common_errors.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

const (
	InternalError      = "internal error"
	ValidationError    = "validation error"
	DataError          = "data error"
	ConfigurationError = "configuration error"
	StorageError       = "storage error"
)

var (
	ErrValidation  = New("validation error").WithTag(ValidationError)
	ErrInvalidConf = New("invalid configuration").WithTag(ConfigurationError)
	ErrDatabase    = New("database error").WithTag(InternalError).WithUserMsg("database error")
	ErrStorage     = New("storage error").WithTag(StorageError).WithTag(InternalError).
			WithUserMsg("session storage unavailable")
)

// users.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

// Package command define validated requests that change users.
package command

import (
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

func validateStruct(s any) error {
	return config.ValidateStruct("user data", s) //nolint:wrapcheck
}

//---------------------------------------------------------------------

// NewUserCmd define new user to add.
type NewUserCmd struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"max=100"`
	Role     string `validate:"omitempty,oneof=admin"`
}

func (n *NewUserCmd) Validate() error {
	return validateStruct(n)
}

type NewUserCmdResult struct {
	UserID int64
}

//---------------------------------------------------------------------

var ErrChangePasswordOldNotMatch = aerr.New("invalid current password").
	WithTag(aerr.ValidationError).
	WithUserMsg("current password is invalid")

// ChangeUserPasswordCmd set new password for user.
type ChangeUserPasswordCmd struct {
	Email            string `validate:"required,email"`
	Password         string `validate:"required,min=6"`
	CurrentPassword  string `validate:"required_if=CheckCurrentPass true"`
	CheckCurrentPass bool
}

func (c *ChangeUserPasswordCmd) Validate() error {
	return validateStruct(c)
}

//---------------------------------------------------------------------

// LockAccountCmd is user account to lock.
type LockAccountCmd struct {
	Email string `validate:"required,email"`
}

func (l *LockAccountCmd) Validate() error {
	return validateStruct(l)
}

//---------------------------------------------------------------------

// DeleteUserCmd delete user.
type DeleteUserCmd struct {
	Email string `validate:"required,email"`
}

func (d *DeleteUserCmd) Validate() error {
	return validateStruct(d)
}

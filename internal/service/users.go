package service

//
// users.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/command"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UsersSrv manage dashboard accounts kept in database.
type UsersSrv struct {
	db         repository.Database
	usersRepo  repository.Users
	passHasher PasswordHasher
}

func NewUsersSrv(i do.Injector) (*UsersSrv, error) {
	return &UsersSrv{
		db:         do.MustInvoke[repository.Database](i),
		usersRepo:  do.MustInvoke[repository.Users](i),
		passHasher: BCryptPasswordHasher{},
	}, nil
}

// CheckUser verify credentials. Return common.ErrUnknownUser,
// common.ErrUserAccountLocked or common.ErrUnauthorized when user can't log in.
func (u *UsersSrv) CheckUser(ctx context.Context, email, password string) (*model.User, error) {
	switch {
	case email == "":
		return nil, common.ErrEmptyEmail
	case password == "":
		return nil, common.ErrUnauthorized
	}

	user, err := db.InConnectionR(ctx, u.db, func(ctx context.Context) (*model.User, error) {
		return u.findUser(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	if user.Locked {
		return nil, common.ErrUserAccountLocked
	}

	if !u.passHasher.CheckPassword(password, user.Password) {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

func (u *UsersSrv) AddUser(ctx context.Context, cmd *command.NewUserCmd) (command.NewUserCmdResult, error) {
	if err := cmd.Validate(); err != nil {
		return command.NewUserCmdResult{}, aerr.Wrapf(err, "validate new user failed")
	}

	hashed, err := u.passHasher.HashPassword(cmd.Password)
	if err != nil {
		return command.NewUserCmdResult{}, aerr.Wrapf(err, "hash password failed")
	}

	user := model.User{
		Email:    strings.ToLower(cmd.Email),
		Password: hashed,
		Name:     cmd.Name,
		Role:     cmd.Role,
	}

	uid, err := db.InTransactionR(ctx, u.db, func(ctx context.Context) (int64, error) {
		_, err := u.findUser(ctx, user.Email)
		switch {
		case err == nil:
			return 0, common.ErrUserExists
		case !errors.Is(err, common.ErrUnknownUser):
			return 0, err
		}

		uid, err := u.usersRepo.SaveUser(ctx, &user)
		if err != nil {
			return 0, aerr.ApplyFor(aerr.ErrDatabase, err)
		}

		return uid, nil
	})
	if err != nil {
		return command.NewUserCmdResult{}, err
	}

	log.Ctx(ctx).Info().Int64(common.LogKeyUserID, uid).Msgf("UsersSrv: user added email=%q", user.Email)

	return command.NewUserCmdResult{UserID: uid}, nil
}

// ChangePassword set new password; also unlock locked account.
func (u *UsersSrv) ChangePassword(ctx context.Context, cmd *command.ChangeUserPasswordCmd) error {
	if err := cmd.Validate(); err != nil {
		return aerr.Wrapf(err, "validate change password failed")
	}

	hashed, err := u.passHasher.HashPassword(cmd.Password)
	if err != nil {
		return aerr.Wrapf(err, "hash password failed")
	}

	return u.updateUser(ctx, cmd.Email, func(user *model.User) error {
		if cmd.CheckCurrentPass && !u.passHasher.CheckPassword(cmd.CurrentPassword, user.Password) {
			return command.ErrChangePasswordOldNotMatch
		}

		user.Password = hashed

		return nil
	})
}

func (u *UsersSrv) GetUsers(ctx context.Context, activeOnly bool) ([]model.User, error) {
	users, err := db.InConnectionR(ctx, u.db, func(ctx context.Context) ([]model.User, error) {
		return u.usersRepo.ListUsers(ctx, activeOnly)
	})
	if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err)
	}

	return users, nil
}

func (u *UsersSrv) LockAccount(ctx context.Context, cmd command.LockAccountCmd) error {
	if err := cmd.Validate(); err != nil {
		return aerr.Wrapf(err, "validate lock account failed")
	}

	err := u.updateUser(ctx, cmd.Email, func(user *model.User) error {
		user.Password = model.UserLockedPassword

		return nil
	})
	if err == nil {
		log.Ctx(ctx).Info().Msgf("UsersSrv: account locked email=%q", cmd.Email)
	}

	return err
}

func (u *UsersSrv) DeleteUser(ctx context.Context, cmd *command.DeleteUserCmd) error {
	if err := cmd.Validate(); err != nil {
		return aerr.Wrapf(err, "validate delete user failed")
	}

	//nolint:wrapcheck
	return db.InTransaction(ctx, u.db, func(ctx context.Context) error {
		user, err := u.findUser(ctx, cmd.Email)
		if err != nil {
			return err
		}

		if err := u.usersRepo.DeleteUser(ctx, user.ID); err != nil {
			return aerr.ApplyFor(aerr.ErrDatabase, err)
		}

		log.Ctx(ctx).Info().Int64(common.LogKeyUserID, user.ID).Msgf("UsersSrv: user deleted email=%q", user.Email)

		return nil
	})
}

// updateUser load user by email, apply `change` and save it in one transaction.
func (u *UsersSrv) updateUser(ctx context.Context, email string, change func(*model.User) error) error {
	//nolint:wrapcheck
	return db.InTransaction(ctx, u.db, func(ctx context.Context) error {
		user, err := u.findUser(ctx, email)
		if err != nil {
			return err
		}

		if err := change(user); err != nil {
			return err
		}

		if _, err := u.usersRepo.SaveUser(ctx, user); err != nil {
			return aerr.ApplyFor(aerr.ErrDatabase, err)
		}

		return nil
	})
}

// findUser need db context; map missing user into common.ErrUnknownUser.
func (u *UsersSrv) findUser(ctx context.Context, email string) (*model.User, error) {
	user, err := u.usersRepo.GetUser(ctx, email)
	switch {
	case errors.Is(err, common.ErrNoData):
		return nil, common.ErrUnknownUser
	case err != nil:
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err)
	default:
		return user, nil
	}
}

//-------------------------------------------------------------

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) bool
}

// BCryptPasswordHasher use bcrypt with default cost.
type BCryptPasswordHasher struct{}

func (BCryptPasswordHasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", aerr.Wrapf(err, "bcrypt failed")
	}

	return string(hash), nil
}

func (BCryptPasswordHasher) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

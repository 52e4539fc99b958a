package auth

//
// verifier.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

// Verifier check credentials. Return nil identity (and nil error) for invalid
// credentials; error only when verification can not be performed.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*model.Identity, error)
}

//------------------------------------------------------------------------------

const (
	DefaultStaticEmail    = "admin@tienda.com"
	DefaultStaticPassword = "admin123"
)

// StaticVerifier accept only one pair of credentials.
type StaticVerifier struct {
	email    string
	password string
	identity model.Identity
}

func NewStaticVerifier(email, password string) *StaticVerifier {
	return &StaticVerifier{
		email:    email,
		password: password,
		identity: model.Identity{
			ID:    "1",
			Email: email,
			Name:  "Administrador",
			Role:  model.RoleAdmin,
		},
	}
}

func (s *StaticVerifier) Verify(_ context.Context, email, password string) (*model.Identity, error) {
	if !strings.EqualFold(email, s.email) ||
		subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return nil, nil //nolint:nilnil
	}

	ident := s.identity

	return &ident, nil
}

//------------------------------------------------------------------------------

// UserChecker check user password; implemented by service.UsersSrv.
type UserChecker interface {
	CheckUser(ctx context.Context, email, password string) (*model.User, error)
}

// UsersVerifier verify credentials against users database.
type UsersVerifier struct {
	users UserChecker
}

func NewUsersVerifier(users UserChecker) *UsersVerifier {
	return &UsersVerifier{users: users}
}

func (u *UsersVerifier) Verify(ctx context.Context, email, password string) (*model.Identity, error) {
	user, err := u.users.CheckUser(ctx, email, password)

	switch {
	case err == nil:
		return user.Identity(), nil
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrUnknownUser),
		errors.Is(err, common.ErrUserAccountLocked):
		log.Ctx(ctx).Debug().Err(err).Msgf("UsersVerifier: rejected email=%q", email)

		return nil, nil //nolint:nilnil
	default:
		return nil, err
	}
}

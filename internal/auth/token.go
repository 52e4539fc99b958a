package auth

//
// token.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

// DefaultTokenTTL is lifetime of session token and its cookie.
const DefaultTokenTTL = 24 * time.Hour

// TokenMinter create session token for identity. Token is opaque for consumers.
type TokenMinter interface {
	Mint(ctx context.Context, identity *model.Identity) (string, error)
}

// JWTMinter sign HS256 tokens.
type JWTMinter struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTMinter(secret string, ttl time.Duration) *JWTMinter {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &JWTMinter{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (j *JWTMinter) Mint(_ context.Context, identity *model.Identity) (string, error) {
	now := j.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    "go-shopadmin",
		},
		Email: identity.Email,
		Role:  identity.Role,
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", aerr.Wrapf(err, "sign token failed").WithTag(aerr.InternalError)
	}

	return signed, nil
}

// Parse validate token and return subject (identity id).
func (j *JWTMinter) Parse(token string) (string, error) {
	var cl claims

	_, err := jwt.ParseWithClaims(token, &cl, func(_ *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", aerr.Wrapf(err, "invalid token").WithTag(aerr.ValidationError)
	}

	return cl.Subject, nil
}

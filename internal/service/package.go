package service

// package.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

// NewVerifierI create credentials verifier configured in session configuration.
func NewVerifierI(i do.Injector) (auth.Verifier, error) { //nolint:ireturn
	conf := do.MustInvoke[*config.SessionConf](i)

	if conf.Verifier == config.VerifierDB {
		return auth.NewUsersVerifier(do.MustInvoke[*UsersSrv](i)), nil
	}

	return auth.NewStaticVerifier(conf.StaticEmail, conf.StaticPassword), nil
}

func NewTokenMinterI(i do.Injector) (auth.TokenMinter, error) { //nolint:ireturn
	conf := do.MustInvoke[*config.SessionConf](i)

	return auth.NewJWTMinter(conf.TokenSecret, conf.TokenTTL), nil
}

func NewLoginLimiterI(i do.Injector) (*auth.LoginLimiter, error) {
	conf := do.MustInvoke[*config.SessionConf](i)

	return auth.NewLoginLimiter(conf.LoginRate, conf.LoginBurst), nil
}

//nolint:gochecknoglobals
var Package = do.Package(
	do.Lazy(NewUsersSrv),
	do.Lazy(NewVerifierI),
	do.Lazy(NewTokenMinterI),
	do.Lazy(NewLoginLimiterI),
	do.Lazy(NewProfilesSrv),
	do.Lazy(NewMaintenanceSrv),
)

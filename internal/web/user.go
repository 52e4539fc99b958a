package web

//
// user.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/command"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/server/srvsupport"
	"gitlab.com/kabes/go-shopadmin/internal/service"
	nt "gitlab.com/kabes/go-shopadmin/internal/web/templates"
)

type userPages struct {
	usersSrv *service.UsersSrv
	tabs     tabOpener
	renderer *nt.Renderer
	// enabled when users are verified against database
	enabled bool
}

func newUserPages(i do.Injector) (userPages, error) {
	conf := do.MustInvoke[*config.SessionConf](i)

	return userPages{
		usersSrv: do.MustInvoke[*service.UsersSrv](i),
		tabs:     do.MustInvoke[tabOpener](i),
		renderer: do.MustInvoke[*nt.Renderer](i),
		enabled:  conf.Verifier == config.VerifierDB,
	}, nil
}

func (u userPages) changePassword(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	logger *zerolog.Logger,
) {
	tab, ok := u.tabs.authenticated(ctx, w, r, logger)
	if !ok {
		return
	}

	var msg string

	switch {
	case !u.enabled:
		msg = "Password of this account can't be changed here."

	case r.Method == http.MethodPost:
		if err := r.ParseForm(); err != nil {
			logger.Info().Err(err).Msgf("UserPages: parse form error=%q", err)
			srvsupport.WriteError(w, r, http.StatusBadRequest, "")

			return
		}

		msg = u.doChangePassword(ctx, r, tab.Store.Identity().Email, logger)
	}

	u.renderer.WritePage(w, &nt.PasswordPage{Msg: msg}, tab.Store.Identity())
}

// passwordForm is submitted change password form.
type passwordForm struct {
	current, new1, new2 string
}

func passwordFormFromRequest(r *http.Request) passwordForm {
	return passwordForm{
		current: r.FormValue("cpass"),
		new1:    r.FormValue("npass1"),
		new2:    r.FormValue("npass2"),
	}
}

// problem return message for invalid form or empty string.
func (f passwordForm) problem() string {
	switch {
	case f.current == "":
		return "current password can't be empty"
	case f.new1 == "":
		return "new password can't be empty"
	case f.new1 != f.new2:
		return "new passwords do not match"
	}

	return ""
}

func (u userPages) doChangePassword(ctx context.Context, r *http.Request, email string,
	logger *zerolog.Logger,
) string {
	form := passwordFormFromRequest(r)
	if p := form.problem(); p != "" {
		return "Error: " + p
	}

	cmd := command.ChangeUserPasswordCmd{
		Email:            email,
		Password:         form.new1,
		CurrentPassword:  form.current,
		CheckCurrentPass: true,
	}

	switch err := u.usersSrv.ChangePassword(ctx, &cmd); {
	case err == nil:
		logger.Info().Str(common.LogKeyEmail, email).Msg("UserPages: password changed")

		return "Password changed"
	case errors.Is(err, command.ErrChangePasswordOldNotMatch):
		return "Error: invalid current password"
	default:
		logger.Info().Err(err).Str(common.LogKeyEmail, email).Msgf("UserPages: change password error=%q", err)

		return "Error: " + aerr.GetUserMessageOr(err, "change password failed")
	}
}

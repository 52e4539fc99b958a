package web

//
// login.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/server/srvsupport"
	"gitlab.com/kabes/go-shopadmin/internal/service"
	nt "gitlab.com/kabes/go-shopadmin/internal/web/templates"
)

type authPages struct {
	profilesSrv *service.ProfilesSrv
	limiter     *auth.LoginLimiter
	tabs        tabOpener
	renderer    *nt.Renderer
	webroot     string
}

func newAuthPages(i do.Injector) (authPages, error) {
	return authPages{
		profilesSrv: do.MustInvoke[*service.ProfilesSrv](i),
		limiter:     do.MustInvoke[*auth.LoginLimiter](i),
		tabs:        do.MustInvoke[tabOpener](i),
		renderer:    do.MustInvoke[*nt.Renderer](i),
		webroot:     do.MustInvokeNamed[string](i, "server.webroot"),
	}, nil
}

func (a authPages) login(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	logger *zerolog.Logger,
) {
	page := nt.LoginPage{Redirect: r.URL.Query().Get("redirect")}

	tab, _, err := a.tabs.open(ctx, w, r)
	if err != nil {
		logger.WithLevel(aerr.LogLevelForError(err)).Err(err).Msg("open profile failed")
		srvsupport.CheckAndWriteError(w, r, err)

		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			logger.Info().Err(err).Msg("parse form error")
			srvsupport.WriteError(w, r, http.StatusBadRequest, "")

			return
		}

		page.Email = r.PostFormValue("email")
		page.Redirect = r.PostFormValue("redirect")

		if !a.limiter.Allow(srvsupport.ClientAddress(r)) {
			logger.Warn().Str(common.LogKeyEmail, page.Email).Msg("login rate limit exceeded")

			page.Msg = aerr.GetUserMessage(common.ErrRateLimited)

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			a.renderer.WritePage(w, &page, nil)

			return
		}

		page.Msg = a.doLogin(ctx, tab, page.Email, r.PostFormValue("password"), logger)
		if page.Msg == "" {
			http.Redirect(w, r, safeRedirect(a.webroot, page.Redirect), http.StatusSeeOther)

			return
		}
	} else if tab.Store.IsAuthenticated() {
		http.Redirect(w, r, safeRedirect(a.webroot, page.Redirect), http.StatusTemporaryRedirect)

		return
	}

	a.renderer.WritePage(w, &page, nil)
}

// doLogin authenticate user; return error message for login form.
func (a authPages) doLogin(ctx context.Context, tab *service.Tab, email, password string,
	logger *zerolog.Logger,
) string {
	ident, err := a.profilesSrv.Login(ctx, tab, email, password)

	switch {
	case err == nil:
		logger.Info().Object("identity", ident).Str(common.LogKeyAuthResult, common.LogAuthResultSuccess).
			Msg("user logged in")

		return ""

	case auth.IsInvalidCredentials(err):
		logger.Info().Str(common.LogKeyEmail, email).Str(common.LogKeyAuthResult, common.LogAuthResultFailed).
			Msg("login failed")

		return "Invalid email or password"

	default:
		logger.Error().Err(err).Str(common.LogKeyEmail, email).
			Str(common.LogKeyAuthResult, common.LogAuthResultError).Msg("login error")

		return aerr.GetUserMessageOr(err, "Sign in is not possible now, try again later")
	}
}

func (a authPages) logout(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	logger *zerolog.Logger,
) {
	tab, nav, err := a.tabs.open(ctx, w, r)
	if err != nil {
		logger.WithLevel(aerr.LogLevelForError(err)).Err(err).Msg("open profile failed")
		srvsupport.CheckAndWriteError(w, r, err)

		return
	}

	a.profilesSrv.Logout(ctx, tab)

	target := nav.Pending()
	if target == "" {
		target = a.webroot + auth.DefaultLoginPath
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (a authPages) recoverPassword(
	_ context.Context,
	w http.ResponseWriter,
	_ *http.Request,
	_ *zerolog.Logger,
) {
	a.renderer.WritePage(w, &nt.InfoPage{
		Heading: "Password recovery",
		Text:    "Contact the shop administrator to receive a password reset link.",
	}, nil)
}

func (a authPages) resetPassword(
	_ context.Context,
	w http.ResponseWriter,
	_ *http.Request,
	_ *zerolog.Logger,
) {
	a.renderer.WritePage(w, &nt.InfoPage{
		Heading: "Reset password",
		Text:    "The reset link is invalid or has expired. Request a new one from the shop administrator.",
	}, nil)
}

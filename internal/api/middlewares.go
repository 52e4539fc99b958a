package api

//
// middlewares.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/server/srvsupport"
	"gitlab.com/kabes/go-shopadmin/internal/service"
)

//nolint:gochecknoglobals
var ctxTabKey = any("ctxTabKey")

func contextTab(ctx context.Context) *service.Tab {
	tab, _ := ctx.Value(ctxTabKey).(*service.Tab)

	return tab
}

// newAuthenticatedOnly restore authentication state of profile and reject
// requests from not logged-in profiles.
func newAuthenticatedOnly(profilesSrv *service.ProfilesSrv, cfg *config.ServerConf,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := hlog.FromRequest(r)
			jar := auth.NewHTTPCookieJar(w, r, cfg.MainServer.UseSecureCookie())

			tab, err := profilesSrv.OpenTab(ctx, common.ContextProfile(ctx), jar, auth.NopNavigator{})
			if err != nil {
				logger.Debug().Err(err).Msg("api: open profile failed")
				srvsupport.CheckAndWriteError(w, r, common.ErrNotLoggedIn)

				return
			}

			if !tab.Store.IsAuthenticated() {
				logger.Debug().Msg("api: profile not authenticated")
				srvsupport.WriteError(w, r, http.StatusUnauthorized, "")

				return
			}

			ident := tab.Store.Identity()
			llogger := logger.With().Str(common.LogKeyUserID, ident.ID).Logger()
			ctx = llogger.WithContext(context.WithValue(ctx, ctxTabKey, tab))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

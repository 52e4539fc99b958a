package server

//
// middlewares.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
	"gitlab.com/kabes/go-shopadmin/internal/server/srvsupport"
	"gitlab.com/kabes/go-shopadmin/internal/service"
)

const (
	// ProfileCookieName is name of cookie identifying browser profile.
	ProfileCookieName = "profile"

	profileMaxLifetime = 30 * 24 * time.Hour
	profileGCInterval  = time.Hour
)

//-------------------------------------------------------------

// newRecoverMiddleware turn panics in handlers into 500 responses.
func newRecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec) //nolint:err113
			}

			if errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			log.Ctx(r.Context()).Error().Err(err).Str("uri", r.RequestURI).Msg("Server: handler panic")

			if r.Header.Get("Connection") != "Upgrade" {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

//-------------------------------------------------------------

// newAuthMgmtMiddleware block access to management endpoints from not allowed addresses.
func newAuthMgmtMiddleware(cfg *config.ServerConf) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if access, _ := cfg.AuthMgmtRequest(r); !access {
				hlog.FromRequest(r).Warn().Str("remote", r.RemoteAddr).
					Msg("MgmtServer: access denied")
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

//-------------------------------------------------------------

func newSecurityHeadersMiddleware(cfg *config.ServerConf) func(http.Handler) http.Handler {
	if !cfg.SetSecurityHeaders {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "same-origin")
			h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; "+
				"script-src 'self' 'unsafe-inline'")

			next.ServeHTTP(w, r)
		})
	}
}

//-------------------------------------------------------------

// newClientMiddleware put remote client description into context; used by session log entries.
func newClientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := common.ContextWithClient(r.Context(), common.Client{
			UserAgent: r.UserAgent(),
			IP:        srvsupport.ClientAddress(r),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

//-------------------------------------------------------------

type sessionMiddleware func(http.Handler) http.Handler

// newSessionMiddleware configure go-chi/session that issue `profile` cookie.
func newSessionMiddleware(i do.Injector) (sessionMiddleware, error) {
	cfg := do.MustInvoke[*config.ServerConf](i)

	opts := session.Options{
		Provider:       config.ProfileStoreMemory,
		CookieName:     ProfileCookieName,
		CookiePath:     mountPath(cfg.MainServer.WebRoot),
		Secure:         cfg.MainServer.UseSecureCookie(),
		SameSite:       http.SameSiteLaxMode,
		Maxlifetime:    int64(profileMaxLifetime / time.Second),
		CookieLifeTime: int(profileMaxLifetime / time.Second),
		Gclifetime:     int64(profileGCInterval / time.Second),
	}

	if cfg.ProfileStore == config.ProfileStoreDB {
		database := do.MustInvoke[repository.Database](i)
		repo := do.MustInvoke[repository.ProfileSessions](i)

		session.RegisterFn(config.ProfileStoreDB, func() session.Provider {
			return service.NewProfileSessionProvider(database, repo, profileMaxLifetime)
		})

		opts.Provider = config.ProfileStoreDB
	}

	mw, err := session.Sessioner(opts)
	if err != nil {
		return nil, aerr.Wrapf(err, "create profile session manager failed").WithMeta("provider", opts.Provider)
	}

	log.Logger.Debug().Msgf("Server: profile store=%q", opts.Provider)

	return mw, nil
}

// newProfileMiddleware put id of browser profile (session id) into context and logger.
func newProfileMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		if sess == nil {
			next.ServeHTTP(w, r)

			return
		}

		profileID := sess.ID()
		logger := hlog.FromRequest(r).With().Str(common.LogKeyProfileID, profileID).Logger()
		ctx := logger.WithContext(common.ContextWithProfile(r.Context(), profileID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

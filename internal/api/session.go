package api

//
// session.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/activity"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/server/srvsupport"
	"gitlab.com/kabes/go-shopadmin/internal/service"
)

type sessionResource struct {
	profilesSrv *service.ProfilesSrv
	cfg         *config.ServerConf
}

func newSessionResource(i do.Injector) (sessionResource, error) {
	return sessionResource{
		profilesSrv: do.MustInvoke[*service.ProfilesSrv](i),
		cfg:         do.MustInvoke[*config.ServerConf](i),
	}, nil
}

func (s sessionResource) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(newAuthenticatedOnly(s.profilesSrv, s.cfg))

	r.Get("/status", srvsupport.WrapNamed(s.getStatus, "api_session_status"))
	r.Post("/activity", srvsupport.WrapNamed(jsonCommand(s.postActivity), "api_session_activity"))
	r.Post("/visibility", srvsupport.WrapNamed(jsonCommand(s.postVisibility), "api_session_visibility"))
	r.Post("/extend", srvsupport.WrapNamed(jsonCommand(s.postExtend), "api_session_extend"))
	r.Get("/logs", srvsupport.WrapNamed(s.getLogs, "api_session_logs"))
	r.Delete("/logs", srvsupport.WrapNamed(s.deleteLogs, "api_session_logs_clear"))

	return r
}

type statusResponse struct {
	User             *model.Identity   `json:"user"`
	State            string            `json:"state"`
	LastActivity     *time.Time        `json:"lastActivity,omitempty"`
	RemainingMinutes float64           `json:"remainingMinutes"`
	ShowWarning      bool              `json:"showWarning"`
	Warning          *activity.Warning `json:"warning,omitempty"`
}

func (s sessionResource) getStatus(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	logger *zerolog.Logger,
) {
	tab := contextTab(ctx)

	status, ok := s.profilesSrv.Status(tab.ProfileID)
	if !ok {
		logger.Debug().Msg("SessionAPI: no running monitor")
		srvsupport.WriteError(w, r, http.StatusUnauthorized, "")

		return
	}

	res := statusResponse{
		User:             tab.Store.Identity(),
		State:            status.State.String(),
		RemainingMinutes: status.RemainingMinutes,
		ShowWarning:      status.ShowWarning,
		Warning:          status.Warning,
	}

	if !status.LastActivity.IsZero() {
		res.LastActivity = &status.LastActivity
	}

	render.Status(r, http.StatusOK)
	srvsupport.RenderJSON(w, r, &res)
}

type activityRequest struct {
	Event string `json:"event"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible"`
}

func (v *visibilityRequest) valid() bool {
	return v.Visible != nil
}

type extendRequest struct {
	Accept bool `json:"accept"`
}

func (s sessionResource) postActivity(ctx context.Context, profile string, req *activityRequest) error {
	return s.profilesSrv.RecordActivity(ctx, profile, req.Event)
}

func (s sessionResource) postVisibility(ctx context.Context, profile string, req *visibilityRequest) error {
	return s.profilesSrv.VisibilityChanged(ctx, profile, *req.Visible)
}

func (s sessionResource) postExtend(ctx context.Context, profile string, req *extendRequest) error {
	return s.profilesSrv.AcknowledgeWarning(ctx, profile, req.Accept)
}

// jsonCommand decode request body into T and apply it to tab profile.
// Respond 204 on success.
func jsonCommand[T any](apply func(context.Context, string, *T) error) srvsupport.HandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request, logger *zerolog.Logger) {
		req := new(T)

		err := render.DecodeJSON(r.Body, req)
		if v, ok := any(req).(interface{ valid() bool }); err == nil && ok && !v.valid() {
			err = aerr.ErrValidation.WithMsg("missing required field")
		}

		if err != nil {
			logger.Debug().Err(err).Msgf("SessionAPI: decode request error=%q", err)
			srvsupport.WriteError(w, r, http.StatusBadRequest, "")

			return
		}

		if err := apply(ctx, contextTab(ctx).ProfileID, req); err != nil {
			srvsupport.CheckAndWriteError(w, r, err)
			logger.WithLevel(aerr.LogLevelForError(err)).Err(err).Msgf("SessionAPI: request failed error=%q", err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s sessionResource) getLogs(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	_ *zerolog.Logger,
) {
	sink := s.profilesSrv.Logs(contextTab(ctx).ProfileID)

	var logs []model.SessionLog
	if user := r.URL.Query().Get("user"); user != "" {
		logs = sink.GetLogsByUser(ctx, user)
	} else {
		logs = sink.GetLogs(ctx)
	}

	if logs == nil {
		logs = []model.SessionLog{}
	}

	render.Status(r, http.StatusOK)
	srvsupport.RenderJSON(w, r, logs)
}

func (s sessionResource) deleteLogs(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	logger *zerolog.Logger,
) {
	if err := s.profilesSrv.Logs(contextTab(ctx).ProfileID).ClearLogs(ctx); err != nil {
		srvsupport.CheckAndWriteError(w, r, err)
		logger.WithLevel(aerr.LogLevelForError(err)).Err(err).Msgf("SessionAPI: clear logs error=%q", err)

		return
	}

	logger.Info().Msg("SessionAPI: session logs cleared")
	w.WriteHeader(http.StatusNoContent)
}

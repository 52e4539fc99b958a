package cli

//
// workers.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/service"
)

const (
	sweepInterval      = time.Minute
	limiterCleanupIdle = 15 * time.Minute
	maintenanceHour    = 4
	// profiles without any change for this time are removed by maintenance.
	profileRetention = 30 * 24 * time.Hour
)

func startWorkers(ctx context.Context, injector do.Injector, cleanProfiles bool) {
	profilesSrv := do.MustInvoke[*service.ProfilesSrv](injector)
	limiter := do.MustInvoke[*auth.LoginLimiter](injector)
	maintSrv := do.MustInvoke[*service.MaintenanceSrv](injector)

	go runPeriodic(ctx, "sweeper", nextTick(sweepInterval), func(ctx context.Context) {
		sweep(ctx, profilesSrv, limiter)
	})

	go runPeriodic(ctx, "maintenance", nextDailyRun(maintenanceHour), func(ctx context.Context) {
		maintenance(ctx, maintSrv, cleanProfiles)
	})
}

// runPeriodic call task at times returned by `next` until ctx is cancelled.
// Every run get own task id in context.
func runPeriodic(ctx context.Context, name string, next func(time.Time) time.Time,
	task func(context.Context),
) {
	ctx, eventlog := common.StartEventLog(ctx, name, "worker")
	defer eventlog.Close()

	logger := log.Ctx(ctx).With().Str("worker", name).Logger()
	logger.Info().Msgf("Worker: start name=%q", name)

	for {
		now := time.Now().UTC()
		wait := next(now).Sub(now)

		logger.Trace().Msgf("Worker: waiting name=%q wait=%s", name, wait)

		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Debug().Msgf("Worker: stopped name=%q", name)

			return
		case <-timer.C:
		}

		taskid := xid.New()
		tlogger := logger.With().Str("task_id", taskid.String()).Logger()
		task(hlog.CtxWithID(tlogger.WithContext(ctx), taskid))
	}
}

func nextTick(interval time.Duration) func(time.Time) time.Time {
	return func(now time.Time) time.Time {
		return now.Add(interval)
	}
}

// nextDailyRun return schedule of once per day run at given hour (UTC).
func nextDailyRun(hour int) func(time.Time) time.Time {
	return func(now time.Time) time.Time {
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}

		return next
	}
}

//---------------------------------------------------------------------

// sweep remove finished monitors and idle login limiters.
func sweep(ctx context.Context, profilesSrv *service.ProfilesSrv, limiter *auth.LoginLimiter) {
	removed := profilesSrv.Sweep(ctx)
	limiters := limiter.Cleanup(limiterCleanupIdle)

	if removed > 0 || limiters > 0 {
		log.Ctx(ctx).Debug().Msgf("Sweeper: removed monitors=%d limiters=%d", removed, limiters)
		common.EventLogFromContext(ctx).Printf("sweep monitors=%d limiters=%d", removed, limiters)
	}
}

func maintenance(ctx context.Context, maintSrv *service.MaintenanceSrv, cleanProfiles bool) {
	logger := log.Ctx(ctx)
	eventlog := common.EventLogFromContext(ctx)
	eventlog.Printf("maintenance start")

	if cleanProfiles {
		if _, err := maintSrv.CleanProfiles(ctx, profileRetention); err != nil {
			logger.Error().Err(err).Msgf("Maintenance: clean profiles error=%q", err)
			eventlog.Errorf("clean profiles error=%q", err)
		}
	}

	if err := maintSrv.MaintainDatabase(ctx); err != nil {
		logger.Error().Err(err).Msgf("Maintenance: database maintenance error=%q", err)
		eventlog.Errorf("maintenance error=%q", err)

		return
	}

	eventlog.Printf("maintenance finished")
}

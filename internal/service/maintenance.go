package service

//
// maintenance.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
)

type MaintenanceSrv struct {
	db        repository.Database
	maintRepo repository.Maintenance
	kvRepo    repository.KeyValues
}

func NewMaintenanceSrv(i do.Injector) (*MaintenanceSrv, error) {
	return &MaintenanceSrv{
		db:        do.MustInvoke[repository.Database](i),
		maintRepo: do.MustInvoke[repository.Maintenance](i),
		kvRepo:    do.MustInvoke[repository.KeyValues](i),
	}, nil
}

func (m *MaintenanceSrv) MaintainDatabase(ctx context.Context) error {
	err := db.InConnection(ctx, m.db, m.maintRepo.Maintenance)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err)
	}

	return nil
}

// CleanProfiles remove stored values of profiles not updated for `maxAge`.
func (m *MaintenanceSrv) CleanProfiles(ctx context.Context, maxAge time.Duration) (int64, error) {
	removed, err := db.InTransactionR(ctx, m.db, func(ctx context.Context) (int64, error) {
		return m.kvRepo.CleanValues(ctx, time.Now().UTC().Add(-maxAge))
	})
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err)
	}

	log.Ctx(ctx).Info().Msgf("MaintenanceSrv: profiles cleaned removed=%d", removed)

	return removed, nil
}

// ListProfiles return ids of profiles with values stored in database.
func (m *MaintenanceSrv) ListProfiles(ctx context.Context) ([]string, error) {
	profiles, err := db.InConnectionR(ctx, m.db, m.kvRepo.ListProfiles)
	if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err)
	}

	return profiles, nil
}

// Package infra bind repository interfaces to implementations.
package infra

//
// package.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/infra/sqlite"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
)

var Package = do.Package(
	do.Lazy(func(i do.Injector) (repository.Database, error) {
		database, err := sqlite.NewDatabaseI(i)
		if err != nil {
			return nil, err
		}

		return database, nil
	}),
	do.Lazy(func(_ do.Injector) (repository.ProfileSessions, error) {
		return &sqlite.Repository{}, nil
	}),
	do.Lazy(func(_ do.Injector) (repository.Users, error) {
		return &sqlite.Repository{}, nil
	}),
	do.Lazy(func(_ do.Injector) (repository.KeyValues, error) {
		return &sqlite.Repository{}, nil
	}),
	do.Lazy(func(_ do.Injector) (repository.Maintenance, error) {
		return &sqlite.Repository{}, nil
	}),
)

package storage

//
// package.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/infra/rdb"
)

// NewProviderI create storage provider configured in session configuration.
func NewProviderI(i do.Injector) (Provider, error) { //nolint:ireturn
	conf := do.MustInvoke[*config.SessionConf](i)

	switch conf.Storage {
	case config.StorageRedis:
		client := do.MustInvoke[*rdb.Client](i)

		return NewRedisProvider(client.Client), nil
	case config.StorageDB:
		provider, err := NewDBProviderI(i)
		if err != nil {
			return nil, err
		}

		return provider, nil
	}

	return NewMemoryProvider(), nil
}

var Package = do.Package(
	do.Lazy(NewProviderI),
)

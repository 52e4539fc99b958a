package bus

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

func NewBusI(i do.Injector) (Bus, error) { //nolint:ireturn
	conf := do.MustInvoke[*config.SessionConf](i)

	if conf.Bus == config.BusRedis {
		client := do.MustInvoke[*rdb.Client](i)

		return NewRedis(client.Client), nil
	}

	return NewLocal(), nil
}

var Package = do.Package(
	do.Lazy(NewBusI),
)

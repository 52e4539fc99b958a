package cli

//
// maintenance.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/service"
)

func newMaintenanceCmd() *cli.Command {
	return &cli.Command{
		Name:   "maintenance",
		Usage:  "optimize database and remove expired profile sessions",
		Action: wrap(maintenanceCmd),
	}
}

func maintenanceCmd(ctx context.Context, _ *cli.Command, injector do.Injector) error {
	maintSrv := do.MustInvoke[*service.MaintenanceSrv](injector)

	if err := maintSrv.MaintainDatabase(ctx); err != nil {
		return aerr.Wrapf(err, "database maintenance failed")
	}

	//nolint:forbidigo
	fmt.Println("Done")

	return nil
}

//---------------------------------------------------------------------

func newCleanProfilesCmd() *cli.Command {
	return &cli.Command{
		Name:  "clean-profiles",
		Usage: "remove data of profiles not used for given time (db storage)",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "max-age",
				Value: profileRetention,
				Usage: "remove profiles not changed for this time",
			},
		},
		Action: wrap(cleanProfilesCmd),
	}
}

func cleanProfilesCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	maxAge := clicmd.Duration("max-age")
	if maxAge <= 0 {
		return aerr.ErrValidation.WithUserMsg("max-age must be positive")
	}

	maintSrv := do.MustInvoke[*service.MaintenanceSrv](injector)

	removed, err := maintSrv.CleanProfiles(ctx, maxAge)
	if err != nil {
		return aerr.Wrapf(err, "clean profiles failed")
	}

	//nolint:forbidigo
	fmt.Printf("Removed %d profiles\n", removed)

	return nil
}

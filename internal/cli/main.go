package cli

//
// main.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//
import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

const envPrefix = "SHOPADMIN_"

// Main run application; exit with code 1 on error.
func Main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "print-version",
		Aliases: []string{"V"},
		Usage:   "Print version.",
	}

	root := &cli.Command{
		Name:    "go-shopadmin",
		Usage:   "e-commerce admin dashboard",
		Version: config.VersionString,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			newStartServerCmd(),
			{
				Name:     "database",
				Usage:    "manage database",
				Commands: []*cli.Command{newMigrateCmd(), newMaintenanceCmd(), newCleanProfilesCmd()},
			},
			{
				Name:  "user",
				Usage: "manage dashboard accounts (db verifier)",
				Commands: []*cli.Command{
					newAddUserCmd(), newDeleteUsersCmd(), newListUsersCmd(),
					newLockUserCmd(), newChangeUserPasswordCmd(),
				},
			},
			{
				Name:     "logs",
				Usage:    "inspect session logs of profiles",
				Commands: []*cli.Command{newListLogsCmd(), newClearLogsCmd()},
			},
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		printError(err, root.String("log.level") == "debug")
		os.Exit(1)
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db.driver",
			Value:   "sqlite3",
			Usage:   "Database driver (sqlite3)",
			Sources: cli.EnvVars(envPrefix + "DB_DRIVER"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "db.connstr",
			Value:   "shopadmin.sqlite",
			Usage:   "Database connection string (file name and sqlite3 options)",
			Aliases: []string{"D"},
			Sources: cli.EnvVars(envPrefix + "DB_CONNSTR"),
			Validator: func(connstr string) error {
				if connstr == "" {
					return aerr.ErrValidation.WithUserMsg("database connection string can't be empty")
				}

				return nil
			},
			Config: cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "log.level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars(envPrefix + "LOGLEVEL"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "log.format",
			Value:   "console",
			Usage:   "Log format (console, logfmt, json, journald, syslog)",
			Sources: cli.EnvVars(envPrefix + "LOGFORMAT"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "debug",
			Usage:   "Comma separated debug flags (" + config.DebugAll.String() + ")",
			Sources: cli.EnvVars(envPrefix + "DEBUG"),
		},
	}
}

//nolint:forbidigo
func printError(err error, details bool) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", aerr.GetUserMessageOr(err, err.Error()))

	if details {
		fmt.Fprintf(os.Stderr, "Details: %+v\n", err)
	}
}

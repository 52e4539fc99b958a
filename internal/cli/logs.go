package cli

//
// logs.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/service"
	"gitlab.com/kabes/go-shopadmin/internal/sessionlog"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

func newListLogsCmd() *cli.Command {
	flags := append(storageFlags(),
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "profile id; list profiles when empty (db storage only)",
			Aliases: []string{"p"},
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "user",
			Usage:   "show only entries of user with given id",
			Aliases: []string{"u"},
			Config:  cli.StringConfig{TrimSpace: true},
		},
	)

	return &cli.Command{
		Name:   "list",
		Usage:  "show session log of profile",
		Flags:  flags,
		Action: wrap(listLogsCmd),
	}
}

//nolint:forbidigo
func listLogsCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	conf := storageConf(clicmd)

	profile := clicmd.String("profile")
	if profile == "" {
		return listProfiles(ctx, conf, injector)
	}

	sink := openSink(injector, conf, profile)

	var logs []model.SessionLog
	if user := clicmd.String("user"); user != "" {
		logs = sink.GetLogsByUser(ctx, user)
	} else {
		logs = sink.GetLogs(ctx)
	}

	fmt.Printf("%-20s | %-18s | %-8s | %-15s | %s\n", "Time", "Action", "User", "IP", "User agent")

	for _, l := range logs {
		fmt.Printf("%-20s | %-18s | %-8s | %-15s | %s\n",
			l.Timestamp.Local().Format(time.DateTime), l.Action, l.UserID, l.IP, l.UserAgent)
	}

	return nil
}

//nolint:forbidigo
func listProfiles(ctx context.Context, conf *config.SessionConf, injector do.Injector) error {
	if conf.Storage != config.StorageDB {
		return aerr.ErrValidation.WithUserMsg("profile is required for %s storage", conf.Storage)
	}

	maintSrv := do.MustInvoke[*service.MaintenanceSrv](injector)

	profiles, err := maintSrv.ListProfiles(ctx)
	if err != nil {
		return aerr.Wrapf(err, "list profiles failed")
	}

	slices.Sort(profiles)

	for _, p := range profiles {
		fmt.Println(p)
	}

	return nil
}

//---------------------------------------------------------------------

func newClearLogsCmd() *cli.Command {
	flags := append(storageFlags(),
		&cli.StringFlag{
			Name:     "profile",
			Usage:    "profile id",
			Required: true,
			Aliases:  []string{"p"},
			Config:   cli.StringConfig{TrimSpace: true},
		},
	)

	return &cli.Command{
		Name:   "clear",
		Usage:  "remove session log of profile",
		Flags:  flags,
		Action: wrap(clearLogsCmd),
	}
}

func clearLogsCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	profile := clicmd.String("profile")
	sink := openSink(injector, storageConf(clicmd), profile)

	if err := sink.ClearLogs(ctx); err != nil {
		return aerr.Wrapf(err, "clear logs failed")
	}

	//nolint:forbidigo
	fmt.Printf("Session log of profile %q cleared\n", profile)

	return nil
}

func openSink(injector do.Injector, conf *config.SessionConf, profile string) *sessionlog.Sink {
	do.ProvideValue(injector, conf)

	provider := do.MustInvoke[storage.Provider](injector)

	return sessionlog.NewSink(provider.Open(profile))
}

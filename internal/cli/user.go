package cli

//
// user.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/command"
	"gitlab.com/kabes/go-shopadmin/internal/service"
	"golang.org/x/term"
)

func emailFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "email",
		Required: true,
		Aliases:  []string{"e"},
		Config:   cli.StringConfig{TrimSpace: true},
	}
}

func passwordFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: usage + "; ask when empty"}
}

// accountCmd build command that take only user email and call `action` on users service.
func accountCmd(name, usage, done string,
	action func(context.Context, *service.UsersSrv, string) error,
) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{emailFlag()},
		Action: wrap(func(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
			email := clicmd.String("email")

			if err := action(ctx, do.MustInvoke[*service.UsersSrv](injector), email); err != nil {
				return aerr.Wrapf(err, "%s user failed", name).WithMeta("email", email)
			}

			fmt.Printf("User %q %s\n", email, done) //nolint:forbidigo

			return nil
		}),
	}
}

//---------------------------------------------------------------------

func newAddUserCmd() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "add new dashboard account",
		Flags: []cli.Flag{
			emailFlag(),
			passwordFlag("password"),
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}},
			&cli.StringFlag{Name: "role", Value: "admin", Aliases: []string{"r"}},
		},
		Action: wrap(func(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
			pass, err := readPassword(clicmd.String("password"))
			if err != nil {
				return err
			}

			cmd := command.NewUserCmd{
				Email:    clicmd.String("email"),
				Password: pass,
				Name:     clicmd.String("name"),
				Role:     clicmd.String("role"),
			}

			res, err := do.MustInvoke[*service.UsersSrv](injector).AddUser(ctx, &cmd)
			if err != nil {
				return aerr.Wrapf(err, "add user failed")
			}

			fmt.Printf("User %q created; id: %d\n", cmd.Email, res.UserID) //nolint:forbidigo

			return nil
		}),
	}
}

func newListUsersCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list dashboard accounts",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "active-only", Usage: "skip locked accounts", Aliases: []string{"a"}},
		},
		Action: wrap(listUsersCmd),
	}
}

func listUsersCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	users, err := do.MustInvoke[*service.UsersSrv](injector).GetUsers(ctx, clicmd.Bool("active-only"))
	if err != nil {
		return aerr.Wrapf(err, "get users failed")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0) //nolint:mnd
	fmt.Fprintln(tw, "ID\tEmail\tName\tRole\tStatus")

	for _, u := range users {
		status := "active"
		if u.Locked {
			status = "LOCKED"
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role, status)
	}

	return tw.Flush() //nolint:wrapcheck
}

func newDeleteUsersCmd() *cli.Command {
	return accountCmd("delete", "delete dashboard account", "deleted",
		func(ctx context.Context, srv *service.UsersSrv, email string) error {
			return srv.DeleteUser(ctx, &command.DeleteUserCmd{Email: email})
		})
}

func newLockUserCmd() *cli.Command {
	return accountCmd("lock", "lock dashboard account", "locked",
		func(ctx context.Context, srv *service.UsersSrv, email string) error {
			return srv.LockAccount(ctx, command.LockAccountCmd{Email: email})
		})
}

func newChangeUserPasswordCmd() *cli.Command {
	return &cli.Command{
		Name:  "password",
		Usage: "set new user password; unlock locked account",
		Flags: []cli.Flag{emailFlag(), passwordFlag("new password")},
		Action: wrap(func(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
			pass, err := readPassword(clicmd.String("password"))
			if err != nil {
				return err
			}

			cmd := command.ChangeUserPasswordCmd{Email: clicmd.String("email"), Password: pass}
			if err := do.MustInvoke[*service.UsersSrv](injector).ChangePassword(ctx, &cmd); err != nil {
				return aerr.Wrapf(err, "change user password failed")
			}

			fmt.Printf("Changed password for user %q\n", cmd.Email) //nolint:forbidigo

			return nil
		}),
	}
}

//---------------------------------------------------------------------

// readPassword return `pass` when given or ask for it on terminal.
func readPassword(pass string) (string, error) {
	if pass = strings.TrimSpace(pass); pass != "" {
		return pass, nil
	}

	fd := int(os.Stdin.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return "", aerr.ErrValidation.WithUserMsg("password is required")
	}

	fmt.Fprint(os.Stderr, "Enter password: ")

	raw, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", aerr.Wrapf(err, "read password failed")
	}

	if pass = strings.TrimSpace(string(raw)); pass == "" {
		return "", aerr.ErrValidation.WithUserMsg("password can't be empty")
	}

	return pass, nil
}

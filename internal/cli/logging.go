// logging.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
package cli

import (
	"fmt"
	"io"
	stdlog "log"
	"log/syslog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/journald"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

const syslogTag = "shopadmin"

//nolint:gochecknoglobals
var logFormats = []string{"console", "logfmt", "json", "journald", "syslog"}

// initializeLogger configure global logger: output format and minimal level.
func initializeLogger(level, format string) error {
	zerolog.ErrorMarshalFunc = aerr.ErrorMarshalFunc //nolint:reassign

	writer, err := newLogWriter(resolveLogFormat(format))
	if err != nil {
		return err
	}

	log.Logger = log.Output(writer).With().Timestamp().Caller().Logger()

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		log.Warn().Msgf("Logger: unknown level=%q; using info", level)

		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	// redirect messages from libraries using standard logger
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	return nil
}

func newLogWriter(format string) (io.Writer, error) {
	switch format {
	case "json":
		return os.Stderr, nil
	case "journald":
		return journald.NewJournalDWriter(), nil
	case "syslog":
		w, err := syslog.New(syslog.LOG_USER|syslog.LOG_INFO, syslogTag)
		if err != nil {
			return nil, aerr.Wrapf(err, "connect to syslog failed")
		}

		return zerolog.SyslogLevelWriter(w), nil
	case "logfmt":
		return logfmtWriter(), nil
	}

	return consoleWriter(), nil
}

// resolveLogFormat return known format; for empty or invalid choose one by stderr type.
func resolveLogFormat(format string) string {
	if slices.Contains(logFormats, format) {
		return format
	}

	if format != "" {
		log.Warn().Msgf("Logger: unknown format=%q", format)
	}

	if stderrIsTerminal() {
		return "console"
	}

	return "logfmt"
}

func stderrIsTerminal() bool {
	fi, err := os.Stderr.Stat()

	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func consoleWriter() io.Writer {
	tty := stderrIsTerminal()

	tformat := time.RFC3339
	if tty {
		tformat = time.TimeOnly
	}

	return zerolog.ConsoleWriter{ //nolint:exhaustruct
		Out:        os.Stderr,
		NoColor:    !tty,
		TimeFormat: tformat,
	}
}

// logfmtWriter write every part of message as key=value.
func logfmtWriter() io.Writer {
	quoted := func(i any) string {
		return strconv.Quote(fmt.Sprint(i))
	}

	return zerolog.ConsoleWriter{ //nolint:exhaustruct
		Out:             os.Stderr,
		NoColor:         true,
		TimeFormat:      time.RFC3339,
		FormatTimestamp: func(i any) string { return "ts=" + fmt.Sprint(i) },
		FormatLevel: func(i any) string {
			if i == nil {
				return ""
			}

			return "level=" + fmt.Sprint(i)
		},
		FormatMessage: func(i any) string {
			if i == nil {
				return "msg=\"\""
			}

			return "msg=" + quoted(i)
		},
		FormatCaller: func(i any) string {
			c := fmt.Sprint(i)
			if strings.ContainsAny(c, " \"") {
				c = strconv.Quote(c)
			}

			return "caller=" + c
		},
		FormatErrFieldValue: quoted,
	}
}

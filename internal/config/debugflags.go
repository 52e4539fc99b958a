package config

//
// debugflags.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"strings"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/common"
)

// DebugFlags is set of enabled debug features.
type DebugFlags uint

const (
	// DebugMsgBody log request and response bodies.
	DebugMsgBody DebugFlags = 1 << iota
	// DebugDo log samber/do container and expose /debug/do.
	DebugDo
	// DebugGo expose /debug/pprof.
	DebugGo
	// DebugRouter print registered routes.
	DebugRouter
	// DebugDBQueryMetrics collect database call durations.
	DebugDBQueryMetrics
	// DebugFlightRecorder dump runtime trace of slow requests.
	DebugFlightRecorder
	// DebugTrace enable net/trace request tracing.
	DebugTrace

	DebugNone DebugFlags = 0
	DebugAll             = DebugTrace<<1 - 1
)

//nolint:gochecknoglobals
var debugFlagNames = []struct {
	name string
	flag DebugFlags
}{
	{"logbody", DebugMsgBody},
	{"do", DebugDo},
	{"go", DebugGo},
	{"router", DebugRouter},
	{"querymetrics", DebugDBQueryMetrics},
	{"flightrecorder", DebugFlightRecorder},
	{"trace", DebugTrace},
}

// ParseDebugFlags parse comma separated list of flag names ("all" enable everything).
// Unknown names are logged and skipped.
func ParseDebugFlags(value string) DebugFlags {
	var flags DebugFlags

	for name := range strings.SplitSeq(value, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		if name == "all" {
			flags |= DebugAll

			continue
		}

		if f, ok := debugFlagByName(name); ok {
			flags |= f
		} else {
			log.Logger.Warn().Msgf("DebugFlags: unknown flag=%q", name)
		}
	}

	if !common.TracingAvailable && flags.HasAny(DebugTrace|DebugFlightRecorder) {
		log.Logger.Warn().Msg("DebugFlags: tracing and flight recorder not available in this build")
	}

	return flags
}

func (d DebugFlags) HasFlag(flag DebugFlags) bool {
	return flag != DebugNone && d&flag == flag
}

func (d DebugFlags) HasAny(flags DebugFlags) bool {
	return d&flags != 0
}

func (d DebugFlags) String() string {
	names := make([]string, 0, len(debugFlagNames))

	for _, f := range debugFlagNames {
		if d.HasFlag(f.flag) {
			names = append(names, f.name)
		}
	}

	return strings.Join(names, ",")
}

func debugFlagByName(name string) (DebugFlags, bool) {
	for _, f := range debugFlagNames {
		if f.name == name {
			return f.flag, true
		}
	}

	return DebugNone, false
}

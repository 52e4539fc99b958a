package config

//
// version.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"runtime/debug"
	"strings"
)

// Set by -ldflags on release builds.
var (
	Version   = "dev"
	Revision  = ""
	BuildDate = ""
	BuildUser = ""
	Branch    = ""
)

// VersionString describe build for --version and startup log.
var VersionString = buildVersionString() //nolint:gochecknoglobals

func buildVersionString() string {
	if Version != "dev" {
		return "Ver: " + Version + ", Rev: " + Revision + ", Build: " + BuildDate +
			" by " + BuildUser + " from " + Branch
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}

	var sb strings.Builder

	sb.WriteString("dev")

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			Revision = s.Value
			sb.WriteString(" rev " + s.Value)
		case "vcs.time":
			BuildDate = s.Value
			sb.WriteString(" at " + s.Value)
		case "vcs.modified":
			if s.Value == "true" {
				sb.WriteString(" (modified)")
			}
		}
	}

	return sb.String()
}

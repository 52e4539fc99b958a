package web

//
// helpers.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "strings"

// safeRedirect accept only local paths under webroot; other targets are
// replaced by dashboard.
func safeRedirect(webroot, target string) string {
	home := webroot + "/"

	switch {
	case target == "":
		return home
	case !strings.HasPrefix(target, "/"), strings.HasPrefix(target, "//"), strings.Contains(target, "\\"):
		return home
	case webroot != "" && target != webroot && !strings.HasPrefix(target, webroot+"/"):
		return home
	case strings.HasPrefix(target, webroot+"/login"):
		return home
	}

	return target
}

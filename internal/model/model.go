// Package model provide object used between api/web layer, services and session core.
package model

//
// model.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

func nvl(value ...string) string {
	for _, v := range value {
		if v != "" {
			return v
		}
	}

	return ""
}

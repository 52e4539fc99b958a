package web

//
// package.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/web/templates"
)

//nolint:gochecknoglobals
var Package = do.Package(
	do.Lazy(New),
	do.Lazy(newTabOpener),
	do.Lazy(newAuthPages),
	do.Lazy(newDashboardPage),
	do.Lazy(newSectionPages),
	do.Lazy(newUserPages),
	do.Lazy(templates.NewRenderer),
)

// Package templates contains quicktemplate pages; *.qtpl.go files are
// generated by qtc.
package templates

//
// helpers.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

//go:generate qtc -dir=.

import (
	"io"
	"math"
	"time"

	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/activity"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

// Section is admin area listed in navigation.
type Section struct {
	Path  string
	Title string
}

//nolint:gochecknoglobals
var Sections = []Section{
	{"/productos", "Products"},
	{"/pedidos", "Orders"},
	{"/usuarios", "Users"},
	{"/resenas", "Reviews"},
	{"/inventario", "Inventory"},
	{"/configuracion", "Settings"},
}

func formatDateTime(t time.Time) string {
	return t.Local().Format(time.DateTime)
}

// remainingMinutes round remaining time up to full minutes.
func remainingMinutes(st activity.Status) int {
	return int(math.Ceil(st.RemainingMinutes))
}

func warningMinutes(st activity.Status) int {
	if st.Warning != nil {
		return st.Warning.MinutesLeft
	}

	return remainingMinutes(st)
}

//------------------------------------------------------------------------------

type PageContext struct {
	Webroot string
	// User is nil on pages available without login.
	User *model.Identity
}

type Renderer struct {
	webroot string
}

func NewRenderer(i do.Injector) (*Renderer, error) {
	return &Renderer{
		webroot: do.MustInvokeNamed[string](i, "server.webroot"),
	}, nil
}

func (r *Renderer) WritePage(w io.Writer, p Page, user *model.Identity) {
	WritePageTemplate(w, p, &PageContext{Webroot: r.webroot, User: user})
}

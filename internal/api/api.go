// Package api handle requests to json endpoints used by admin pages.
package api

//
// api.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"github.com/go-chi/chi/v5"
	"github.com/samber/do/v2"
)

// API is handler for all api endpoints.
type API struct {
	router *chi.Mux
}

func New(i do.Injector) (API, error) {
	sessionResource := do.MustInvoke[sessionResource](i)

	router := chi.NewRouter()
	router.Mount("/session", sessionResource.Routes())

	return API{router}, nil
}

func (a *API) Routes() *chi.Mux {
	return a.router
}

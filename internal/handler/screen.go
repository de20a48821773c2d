// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

// screen is embedded by every handler that renders into a fixed shell. The
// shell decides both the chrome and the base of every link the handler
// builds, so one handler type serves several route branches.
type screen struct {
	renderer *render.Renderer
	client   *api.Client
	shell    render.Shell
}

func newScreen(renderer *render.Renderer, client *api.Client, shell render.Shell) screen {
	return screen{renderer: renderer, client: client, shell: shell}
}

func (s screen) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any, flash string) {
	td := render.TemplateData{Title: title, Data: data}
	if flash != "" {
		td.Flash = flash
		td.FlashType = render.FlashError
	}
	if err := s.renderer.RenderStatus(w, r, status, s.shell, name, td); err != nil {
		logAndInternalError(w, "failed to render screen", "shell", s.shell.Name, "screen", name, "error", err)
	}
}

func (s screen) ok(w http.ResponseWriter, r *http.Request, name, title string, data any, flash string) {
	s.render(w, r, http.StatusOK, name, title, data, flash)
}

// NotFound renders the 404 screen inside the handler's shell.
func (s screen) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "not_found", "Page not found", nil, "")
}

// loaded handles the error of a backend read for a detail page and reports
// whether the caller may go on rendering.
func (s screen) loaded(w http.ResponseWriter, r *http.Request, err error, what string) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, api.ErrNotFound):
		s.NotFound(w, r)
	case errors.Is(err, api.ErrUnauthorized):
		sessionExpired(w, r, s.renderer)
	default:
		logAPIError(err, "failed to load "+what, "path", r.URL.Path)
		s.render(w, r, apiStatus(err), "error", "Something went wrong", nil, api.Message(err))
	}
	return false
}

// failed handles the error of a form submission, redirecting back to
// backURL with a flash.
func (s screen) failed(w http.ResponseWriter, r *http.Request, backURL string, err error, logMsg string, args ...any) {
	apiFailure(w, r, s.renderer, backURL, err, logMsg, args...)
}

// listPage is the data of every paginated list screen.
type listPage[T any] struct {
	Items      []T
	Total      int64
	Pagination Pagination
	Filters    map[string]string
}

// newListPage builds list data from p, which may be nil after a failed load.
func newListPage[T any](p *model.Page[T], baseURL string, r *http.Request, filters map[string]string) listPage[T] {
	if p == nil {
		p = &model.Page[T]{}
	}
	return listPage[T]{
		Items:      p.Items,
		Total:      p.TotalItems,
		Pagination: buildPagination(p, baseURL, r.URL.Query()),
		Filters:    filters,
	}
}

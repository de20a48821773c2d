// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render renders screens inside the layout shell of their audience.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Screen directories under the templates root.
const (
	dirPublic = "screens"
	dirManage = "manage"
	dirShared = "shared"
	dirAuth   = "auth"
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Renderer holds the parsed template set of every screen in every shell.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	cartCount      func(ctx context.Context) int
	logger         *slog.Logger
}

// Config holds renderer dependencies.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	// CartCount feeds the cart badge; nil hides it.
	CartCount func(ctx context.Context) int
	Logger    *slog.Logger
}

// New parses all templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		cartCount:      cfg.CartCount,
		logger:         cfg.Logger,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

// parseTemplates builds one template set per (shell, screen). Public
// screens go into the public shell, management screens into each back-office
// shell, shared screens into all of them and auth screens into the bare base.
func (r *Renderer) parseTemplates(tfs fs.FS) error {
	partials, err := templateFiles(tfs, "partials")
	if err != nil {
		return err
	}
	const baseLayout = "layouts/base.html"

	shared, err := templateFiles(tfs, dirShared)
	if err != nil {
		return err
	}

	for _, shell := range Shells {
		dir := dirPublic
		if shell.Management() {
			dir = dirManage
		}
		screens, err := templateFiles(tfs, dir)
		if err != nil {
			return err
		}
		layout := "layouts/" + shell.Name + ".html"

		for _, screen := range append(screens, shared...) {
			files := append([]string{baseLayout, layout}, partials...)
			files = append(files, screen)

			tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(tfs, files...)
			if err != nil {
				return fmt.Errorf("parsing %s in %s shell: %w", screen, shell.Name, err)
			}
			r.templates[key(shell.Name, screenName(screen))] = tmpl
		}
	}

	authScreens, err := templateFiles(tfs, dirAuth)
	if err != nil {
		return err
	}
	for _, screen := range authScreens {
		files := append([]string{baseLayout}, partials...)
		files = append(files, screen)

		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(tfs, files...)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", screen, err)
		}
		r.templates[key(dirAuth, screenName(screen))] = tmpl
	}
	return nil
}

func key(group, screen string) string {
	return group + "/" + screen
}

func screenName(file string) string {
	return strings.TrimSuffix(path.Base(file), ".html")
}

// templateFiles lists the .html files of dir. A missing dir yields none.
func templateFiles(tfs fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(tfs, dir)
	if err != nil {
		return nil, nil
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".html") {
			files = append(files, path.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// Has reports whether screen exists in shell.
func (r *Renderer) Has(shell Shell, screen string) bool {
	_, ok := r.templates[key(shell.Name, screen)]
	return ok
}

// TemplateData is the value every template executes against.
type TemplateData struct {
	Title       string
	Shell       Shell
	User        *model.User
	Data        any
	Flash       string
	FlashType   string
	CartCount   int
	CurrentPath string
	CurrentYear int
}

// Render renders screen inside shell with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, shell Shell, screen string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, shell, screen, data)
}

// RenderStatus renders screen inside shell with the given status.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, shell Shell, screen string, data TemplateData) error {
	tmpl, ok := r.templates[key(shell.Name, screen)]
	if !ok {
		return fmt.Errorf("template %s not found in %s shell", screen, shell.Name)
	}
	data.Shell = shell
	return r.execute(w, req, status, tmpl, data)
}

// RenderAuth renders an auth screen in the bare base layout.
func (r *Renderer) RenderAuth(w http.ResponseWriter, req *http.Request, status int, screen string, data TemplateData) error {
	tmpl, ok := r.templates[key(dirAuth, screen)]
	if !ok {
		return fmt.Errorf("auth template %s not found", screen)
	}
	data.Shell = PublicShell
	return r.execute(w, req, status, tmpl, data)
}

func (r *Renderer) execute(w http.ResponseWriter, req *http.Request, status int, tmpl *template.Template, data TemplateData) error {
	ctx := req.Context()
	data.CurrentYear = time.Now().Year()
	data.CurrentPath = req.URL.Path
	if data.User == nil {
		data.User = identity.UserFromContext(ctx)
	}
	if r.cartCount != nil && !data.Shell.Management() {
		data.CartCount = r.cartCount(ctx)
	}

	if r.sessionManager != nil && data.Flash == "" {
		if flash := r.sessionManager.PopString(ctx, "flash"); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(ctx, "flash_type")
			if data.FlashType == "" {
				data.FlashType = FlashInfo
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("writing response", "error", err)
	}
	return nil
}

// SetFlash stores a one-shot message shown on the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), "flash", message)
		r.sessionManager.Put(req.Context(), "flash_type", flashType)
	}
}

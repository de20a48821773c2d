// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Shell is the page chrome of one audience. Handlers receive the shell they
// are mounted under and build every link through it.
type Shell struct {
	Name     string
	Title    string
	BasePath string
}

// The four audience shells.
var (
	PublicShell   = Shell{Name: "public", Title: "Pawradise", BasePath: model.BasePath(model.RoleUser)}
	AdminShell    = Shell{Name: "admin", Title: "Admin", BasePath: model.BasePath(model.RoleSuperAdmin)}
	ManagerShell  = Shell{Name: "manager", Title: "Store", BasePath: model.BasePath(model.RoleStoreManager)}
	AdoptionShell = Shell{Name: "adoption", Title: "Adoptions", BasePath: model.BasePath(model.RoleAdoptionCoordinator)}
)

// Shells lists every shell a screen may be rendered in.
var Shells = []Shell{PublicShell, AdminShell, ManagerShell, AdoptionShell}

// ShellFor returns the shell of role, falling back to the public shell.
func ShellFor(role model.Role) Shell {
	for _, s := range Shells {
		if s.BasePath == model.BasePath(role) {
			return s
		}
	}
	return PublicShell
}

// Management reports whether the shell is a back-office section.
func (s Shell) Management() bool {
	return s.Name != PublicShell.Name
}

// Path joins parts under the shell's base path without doubled slashes.
// Path() returns the base path itself.
func (s Shell) Path(parts ...string) string {
	base := strings.TrimSuffix(s.BasePath, "/")
	var b strings.Builder
	b.WriteString(base)
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(p)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

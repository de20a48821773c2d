// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the records exchanged with the Pawradise backend
// and the role policy that maps each role to its section of the site.
package model

import "strings"

// Role is one of the closed set of account roles issued by the backend.
type Role string

// Account roles.
const (
	RoleUser                Role = "USER"
	RoleStoreManager        Role = "STORE_MANAGER"
	RoleAdoptionCoordinator Role = "ADOPTION_COORDINATOR"
	RoleSuperAdmin          Role = "SUPER_ADMIN"
)

// Base paths for each audience.
const (
	BasePathUser     = "/"
	BasePathManager  = "/manager"
	BasePathAdoption = "/adoption"
	BasePathAdmin    = "/admin"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleUser, RoleStoreManager, RoleAdoptionCoordinator, RoleSuperAdmin}

// ParseRole normalizes s and returns the matching role.
// The second result is false for unknown input.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStoreManager, RoleAdoptionCoordinator, RoleSuperAdmin:
		return true
	}
	return false
}

// Label returns a human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "Customer"
	case RoleStoreManager:
		return "Store manager"
	case RoleAdoptionCoordinator:
		return "Adoption coordinator"
	case RoleSuperAdmin:
		return "Super admin"
	}
	return "Unknown"
}

// BasePath returns the section of the site a role belongs to.
// Unknown or empty roles map to "".
func BasePath(r Role) string {
	switch r {
	case RoleUser:
		return BasePathUser
	case RoleStoreManager:
		return BasePathManager
	case RoleAdoptionCoordinator:
		return BasePathAdoption
	case RoleSuperAdmin:
		return BasePathAdmin
	}
	return ""
}

// HasRole reports whether r is contained in allowed.
func HasRole(r Role, allowed []Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

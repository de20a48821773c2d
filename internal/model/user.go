// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// User is the profile returned by GET /api/profile/me.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Initial returns the first character of the user's name for avatars.
func (u *User) Initial() string {
	if u == nil || u.Name == "" {
		return "?"
	}
	return string([]rune(u.Name)[0])
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// DashboardStats summarizes backend data for the management dashboards.
type DashboardStats struct {
	Pets            int64 `json:"pets"`
	AvailablePets   int64 `json:"availablePets"`
	Products        int64 `json:"products"`
	LowStock        int64 `json:"lowStock"`
	Orders          int64 `json:"orders"`
	PendingOrders   int64 `json:"pendingOrders"`
	Users           int64 `json:"users"`
	PendingVisits   int64 `json:"pendingVisits"`
	PublishedGuides int64 `json:"publishedGuides"`
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Guide is a pet-care content article written in Markdown.
type Guide struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	Author    string    `json:"author,omitempty"`
	Published bool      `json:"published"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Page is one page of a paginated backend listing.
type Page[T any] struct {
	Items      []T   `json:"content"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalElements"`
	TotalPages int   `json:"totalPages"`
}

// HasNext reports whether another page follows.
func (p Page[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool {
	return p.Page > 0
}

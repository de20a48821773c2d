// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Pet adoption states.
const (
	PetAvailable = "AVAILABLE"
	PetPending   = "PENDING"
	PetAdopted   = "ADOPTED"
)

// PetStatuses lists the adoption states in workflow order.
var PetStatuses = []string{PetAvailable, PetPending, PetAdopted}

// Pet is an animal listed for adoption.
type Pet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// Available reports whether the pet can still receive visit requests.
func (p Pet) Available() bool {
	return p.Status == "" || p.Status == PetAvailable
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Visit request states.
const (
	VisitRequested = "REQUESTED"
	VisitApproved  = "APPROVED"
	VisitRejected  = "REJECTED"
	VisitCompleted = "COMPLETED"
)

// VisitStatuses lists the visit request states.
var VisitStatuses = []string{VisitRequested, VisitApproved, VisitRejected, VisitCompleted}

// VisitRequest asks to meet a pet before adopting it.
type VisitRequest struct {
	ID            string    `json:"id"`
	PetID         string    `json:"petId"`
	PetName       string    `json:"petName,omitempty"`
	UserID        string    `json:"userId,omitempty"`
	UserName      string    `json:"userName,omitempty"`
	PreferredDate string    `json:"preferredDate"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}

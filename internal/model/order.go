// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Order states.
const (
	OrderPending   = "PENDING"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// OrderStatuses lists the order states in workflow order.
var OrderStatuses = []string{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled}

// Order is a placed shop order.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	CustomerName    string      `json:"customerName,omitempty"`
	Items           []OrderItem `json:"items"`
	Total           int64       `json:"total"` // cents
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	CreatedAt       time.Time   `json:"createdAt,omitzero"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// NewOrder is the payload sent when placing an order.
type NewOrder struct {
	Items           []OrderItem `json:"items"`
	ShippingAddress string      `json:"shippingAddress"`
	Phone           string      `json:"phone"`
}

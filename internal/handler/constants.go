// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration. Management routes
// are relative to the shell they are mounted under.
const (
	RouteRoot      = "/"
	RouteParamID   = "/{id}"
	RouteSuffixNew = "/new"
	RouteEditID    = "/edit/{id}"
	RouteDeleteID  = "/delete/{id}"
	RouteStatusID  = "/{id}/status"
	RouteRoleID    = "/{id}/role"

	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteForgotPassword = "/forgot-password"
	RouteLogout         = "/logout"
	RouteUnauthorized   = "/unauthorized"
	RouteOAuthCallback  = "/oauth/callback"

	RoutePets     = "/pets"
	RouteShop     = "/shop"
	RouteGuides   = "/guides"
	RouteCart     = "/cart"
	RouteCheckout = "/checkout"
	RouteAccount  = "/account"

	RouteProducts  = "/products"
	RouteOrders    = "/orders"
	RouteVisits    = "/visit-requests"
	RouteUsers     = "/users"
	RouteDashboard = "/dashboard"
)

// Storefront redirect targets.
const (
	redirectCart          = RouteCart
	redirectCheckout      = RouteCheckout
	redirectAccount       = RouteAccount
	redirectAccountOrders = RouteAccount + RouteOrders
	redirectLogin         = RouteLogin
)

// Page sizes.
const (
	storefrontPageSize = 12
	managePageSize     = 20
	homeFeatured       = 4
)

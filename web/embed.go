// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the Pawradise screens and their static assets.
package web

import "embed"

// Templates holds one layout per shell plus the public, management, auth
// and shared screens.
//
//go:embed templates/layouts templates/partials templates/screens templates/manage templates/auth templates/shared
var Templates embed.FS

// Static holds the built stylesheet and script served under /static/dist.
//
//go:embed static/dist
var Static embed.FS

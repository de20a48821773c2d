// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/util"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"price": model.FormatPrice,
		"truncate": func(s string, length int) string {
			r := []rune(s)
			if len(r) <= length {
				return s
			}
			return string(r[:length]) + "..."
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"roleLabel": func(r model.Role) string { return r.Label() },
		"lower":     strings.ToLower,
		"statusClass": func(status string) string {
			switch status {
			case model.PetAvailable, model.OrderDelivered, model.VisitApproved, model.VisitCompleted:
				return "badge-ok"
			// Pets and orders share PENDING.
			case model.PetPending, model.OrderPaid, model.VisitRequested:
				return "badge-wait"
			case model.OrderCancelled, model.VisitRejected:
				return "badge-bad"
			}
			return "badge"
		},
		"hasPrefix": strings.HasPrefix,
		"eqRole":    func(a, b model.Role) bool { return a == b },
		"basePath":  model.BasePath,
		"unslug":    util.Unslug,
	}
}

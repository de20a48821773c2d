// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Pagination holds page links for list templates. Page numbers are
// 1-based here; the backend counts from 0.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	PerPage     int
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
	Pages       []PageLink
}

// PageLink is one numbered link, or an ellipsis.
type PageLink struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// pageParam reads ?page= (1-based) and returns the backend's 0-based index.
func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 0
	}
	return n - 1
}

// buildPagination creates pagination for a backend page. Query parameters
// other than page are preserved in every link.
func buildPagination[T any](p *model.Page[T], baseURL string, query url.Values) Pagination {
	current := p.Page + 1
	totalPages := max(p.TotalPages, 1)

	params := make(url.Values)
	for k, v := range query {
		if k != "page" && len(v) > 0 && v[0] != "" {
			params[k] = v
		}
	}
	qs := params.Encode()
	link := func(n int) string {
		if qs != "" {
			return fmt.Sprintf("%s?%s&page=%d", baseURL, qs, n)
		}
		return fmt.Sprintf("%s?page=%d", baseURL, n)
	}

	pg := Pagination{
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalItems:  p.TotalItems,
		PerPage:     p.Size,
		HasPrev:     p.HasPrev(),
		HasNext:     p.HasNext(),
	}
	if pg.HasPrev {
		pg.PrevURL = link(current - 1)
	}
	if pg.HasNext {
		pg.NextURL = link(current + 1)
	}

	// At most five numbered links around the current page.
	start, end := current-2, current+2
	if start < 1 {
		start, end = 1, 5
	}
	if end > totalPages {
		end = totalPages
		start = max(end-4, 1)
	}

	if start > 1 {
		pg.Pages = append(pg.Pages, PageLink{Number: 1, URL: link(1)})
		if start > 2 {
			pg.Pages = append(pg.Pages, PageLink{IsEllipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		pg.Pages = append(pg.Pages, PageLink{Number: i, URL: link(i), IsCurrent: i == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			pg.Pages = append(pg.Pages, PageLink{IsEllipsis: true})
		}
		pg.Pages = append(pg.Pages, PageLink{Number: totalPages, URL: link(totalPages)})
	}
	return pg
}

// ShouldShow reports whether there is more than one page.
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}

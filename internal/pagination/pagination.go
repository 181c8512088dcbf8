// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pagination computes page windows over ordered collections.
// A single Config type serves both pager flavors in the application: the
// fixed-size web listings and the client-sizable JSON API. Out-of-range
// page requests are clamped to the nearest valid page, never rejected —
// a deliberate contract that every list surface shares.
package pagination

import "strconv"

// Config describes one pager instance. PageSize is the default number of
// items per page. MaxPageSize, when non-zero, allows callers to override
// the size up to that bound; when zero the size is fixed.
type Config struct {
	PageSize    int
	MaxPageSize int
}

// Window is the computed page window plus its metadata. Offset and Limit
// locate the window inside the full ordered collection; Page is the
// effective (clamped) page number.
type Window struct {
	Page        int
	TotalPages  int
	Offset      int
	Limit       int
	HasNext     bool
	HasPrevious bool
}

// Window computes the page window for a collection of total items.
// The requested page is clamped to [1, TotalPages]; a total of zero yields
// a single empty page. Pure function — no side effects.
func (c Config) Window(total, requested int) Window {
	size := c.PageSize
	if size < 1 {
		size = 1
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	page := requested
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * size
	limit := size
	if offset > total {
		offset = total
	}
	if offset+limit > total {
		limit = total - offset
	}

	return Window{
		Page:        page,
		TotalPages:  totalPages,
		Offset:      offset,
		Limit:       limit,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// Paginate slices the window out of a full ordered collection. The window
// must have been computed for len(items).
func Paginate[T any](items []T, w Window) []T {
	return items[w.Offset : w.Offset+w.Limit]
}

// ParsePage parses a 1-based page number from a query parameter.
// Absent or malformed input falls back to page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// ParseSize parses a page-size override from a query parameter. When the
// config is not overridable (MaxPageSize zero) or the input is malformed,
// the default size is returned. Valid input is clamped to [1, MaxPageSize].
func (c Config) ParseSize(raw string) int {
	if c.MaxPageSize == 0 || raw == "" {
		return c.PageSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return c.PageSize
	}
	if n > c.MaxPageSize {
		return c.MaxPageSize
	}
	return n
}

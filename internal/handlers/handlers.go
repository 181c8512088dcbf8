// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for Newsdesk. Handlers are
// grouped by concern (web, auth, api) and receive their dependencies
// through the handler struct.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/pagination"
	"newsdesk/internal/render"
	"newsdesk/internal/session"
	"newsdesk/internal/storage"
	"newsdesk/internal/store"
)

// webPager is the pager shared by every server-rendered listing. The API
// uses its own configuration (see api.go); the two are deliberately
// separate instances of the same component.
var webPager = pagination.Config{PageSize: 6}

// Web groups the server-rendered page handlers and their dependencies.
type Web struct {
	renderer   *render.Renderer
	articles   *store.ArticleStore
	categories *store.CategoryStore
	users      *store.UserStore
	storage    *storage.Client // nil when image uploads are disabled
}

// NewWeb creates the Web handler group. storageClient may be nil if S3 is
// not configured.
func NewWeb(renderer *render.Renderer, articles *store.ArticleStore, categories *store.CategoryStore, users *store.UserStore, storageClient *storage.Client) *Web {
	return &Web{
		renderer:   renderer,
		articles:   articles,
		categories: categories,
		users:      users,
		storage:    storageClient,
	}
}

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// pagerContext is the uniform pagination context every list template
// receives, regardless of entity type.
type pagerContext struct {
	Page        int
	TotalPages  int
	PrevPage    int
	NextPage    int
	HasNext     bool
	HasPrevious bool
}

// pagerFrom converts a pagination window into the template context.
func pagerFrom(w pagination.Window) pagerContext {
	return pagerContext{
		Page:        w.Page,
		TotalPages:  w.TotalPages,
		PrevPage:    w.Page - 1,
		NextPage:    w.Page + 1,
		HasNext:     w.HasNext,
		HasPrevious: w.HasPrevious,
	}
}

// urlID parses the {id} route parameter. The second return is false when
// the parameter is not a valid UUID; callers respond 404.
func urlID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

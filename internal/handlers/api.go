// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"newsdesk/internal/pagination"
	"newsdesk/internal/store"
)

// apiPager is the pager for the JSON API. Unlike the web pager the client
// may pick its own page size, up to a hard ceiling.
var apiPager = pagination.Config{PageSize: 2, MaxPageSize: 200}

// API groups the read-only JSON endpoints.
type API struct {
	articles   *store.ArticleStore
	categories *store.CategoryStore
}

// NewAPI creates the API handler group.
func NewAPI(articles *store.ArticleStore, categories *store.CategoryStore) *API {
	return &API{articles: articles, categories: categories}
}

// apiCategory is the wire shape of a category.
type apiCategory struct {
	ID       uuid.UUID  `json:"id"`
	Title    string     `json:"title"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// apiArticle is the wire shape of an article.
type apiArticle struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	UserID      *uuid.UUID `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       *string    `json:"image"`
}

// envelope is the paginated response shape: total count plus absolute
// links to the neighbouring pages, null at the edges.
type envelope struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// CategoryList returns every category as a flat JSON array.
func (h *API) CategoryList(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List()
	if err != nil {
		slog.Error("api list categories failed", "error", err)
		apiError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]apiCategory, 0, len(items))
	for _, c := range items {
		out = append(out, apiCategory{ID: c.ID, Title: c.Title, ParentID: c.ParentID})
	}

	writeJSON(w, http.StatusOK, out)
}

// NewsList returns articles wrapped in a pagination envelope. The page
// size defaults to 2 and can be raised by the client up to 200 via the
// page_size parameter.
func (h *API) NewsList(w http.ResponseWriter, r *http.Request) {
	items, err := h.articles.List()
	if err != nil {
		slog.Error("api list articles failed", "error", err)
		apiError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	q := r.URL.Query()
	page := pagination.ParsePage(q.Get("page"))
	size := apiPager.ParseSize(q.Get("page_size"))

	window := pagination.Config{PageSize: size, MaxPageSize: apiPager.MaxPageSize}.
		Window(len(items), page)

	results := make([]apiArticle, 0, window.Limit)
	for _, a := range pagination.Paginate(items, window) {
		results = append(results, apiArticle{
			ID:          a.ID,
			CategoryID:  a.CategoryID,
			UserID:      a.AuthorID,
			Title:       a.Title,
			Description: a.Description,
			Image:       a.Image,
		})
	}

	env := envelope{
		Count:   len(items),
		Results: results,
	}
	if window.HasNext {
		env.Next = pageURL(r, window.Page+1, q.Get("page_size"))
	}
	if window.HasPrevious {
		env.Previous = pageURL(r, window.Page-1, q.Get("page_size"))
	}

	writeJSON(w, http.StatusOK, env)
}

// pageURL builds an absolute URL for the given page of the current
// request, carrying the caller's page_size through. Page 1 drops the page
// parameter entirely.
func pageURL(r *http.Request, page int, rawSize string) *string {
	u := url.URL{
		Scheme: "http",
		Host:   r.Host,
		Path:   r.URL.Path,
	}
	if r.TLS != nil {
		u.Scheme = "https"
	}

	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if rawSize != "" {
		q.Set("page_size", rawSize)
	}
	u.RawQuery = q.Encode()

	s := u.String()
	return &s
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response failed", "error", err)
	}
}

// apiError writes a DRF-style error body.
func apiError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

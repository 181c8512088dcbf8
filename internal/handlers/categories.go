// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"newsdesk/internal/models"
	"newsdesk/internal/pagination"
	"newsdesk/internal/render"
	"newsdesk/internal/store"
)

// CategoryList renders the paginated category listing.
func (h *Web) CategoryList(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := pagination.ParsePage(r.URL.Query().Get("page"))
	window := webPager.Window(len(items), page)

	h.renderer.Page(w, r, "category_list", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data: map[string]any{
			"Items": pagination.Paginate(items, window),
			"Pager": pagerFrom(window),
		},
	})
}

// CategoryCreatePage renders the empty category form.
func (h *Web) CategoryCreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderCategoryForm(w, r, "Add category", map[string]any{
		"IsNew":    true,
		"Title":    "",
		"ParentID": (*uuid.UUID)(nil),
	}, "", uuid.Nil)
}

// CategoryCreateSubmit validates the form and creates the category.
func (h *Web) CategoryCreateSubmit(w http.ResponseWriter, r *http.Request) {
	title, parentID := parseCategoryForm(r)

	formData := map[string]any{
		"IsNew":    true,
		"Title":    title,
		"ParentID": parentID,
	}

	if msg := validateCategory(title); msg != "" {
		h.renderCategoryForm(w, r, "Add category", formData, msg, uuid.Nil)
		return
	}

	if _, err := h.categories.Create(title, parentID); err != nil {
		slog.Error("create category failed", "error", err)
		h.renderCategoryForm(w, r, "Add category", formData, "Could not save the category.", uuid.Nil)
		return
	}

	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// CategoryUpdatePage renders the form prefilled with the category's fields.
func (h *Web) CategoryUpdatePage(w http.ResponseWriter, r *http.Request) {
	category, ok := h.loadCategory(w, r)
	if !ok {
		return
	}

	h.renderCategoryForm(w, r, "Edit category", map[string]any{
		"IsNew":    false,
		"Title":    category.Title,
		"ParentID": category.ParentID,
	}, "", category.ID)
}

// CategoryUpdateSubmit applies form changes. A parent assignment that
// would make the category its own ancestor is rejected and the form is
// re-rendered with an error.
func (h *Web) CategoryUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	category, ok := h.loadCategory(w, r)
	if !ok {
		return
	}

	title, parentID := parseCategoryForm(r)

	formData := map[string]any{
		"IsNew":    false,
		"Title":    title,
		"ParentID": parentID,
	}

	if msg := validateCategory(title); msg != "" {
		h.renderCategoryForm(w, r, "Edit category", formData, msg, category.ID)
		return
	}

	err := h.categories.Update(category.ID, title, parentID)
	if errors.Is(err, store.ErrCategoryCycle) {
		h.renderCategoryForm(w, r, "Edit category", formData,
			"A category cannot be moved under itself or one of its subcategories.", category.ID)
		return
	}
	if err != nil {
		slog.Error("update category failed", "error", err, "id", category.ID)
		h.renderCategoryForm(w, r, "Edit category", formData, "Could not save the category.", category.ID)
		return
	}

	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// CategoryDeletePage renders the delete confirmation, which warns that the
// whole subtree and its articles go with it.
func (h *Web) CategoryDeletePage(w http.ResponseWriter, r *http.Request) {
	category, ok := h.loadCategory(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "category_delete", &render.PageData{
		Title:   "Delete category",
		Section: "categories",
		Data:    map[string]any{"Category": category},
	})
}

// CategoryDeleteSubmit removes the category; descendants and their
// articles cascade in the database.
func (h *Web) CategoryDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	category, ok := h.loadCategory(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(category.ID); err != nil {
		slog.Error("delete category failed", "error", err, "id", category.ID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// loadCategory fetches the category named by the route, writing a 404 and
// returning ok=false when it does not exist.
func (h *Web) loadCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, ok := urlID(r)
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}
	if category == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return category, true
}

// renderCategoryForm renders the category form. When editing, the category
// itself is excluded from the parent dropdown so the obvious self-cycle is
// not even offered.
func (h *Web) renderCategoryForm(w http.ResponseWriter, r *http.Request, title string, data map[string]any, errMsg string, exclude uuid.UUID) {
	all, err := h.categories.FlatTree()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var options []models.Category
	for _, c := range all {
		if c.ID != exclude {
			options = append(options, c)
		}
	}

	data["Categories"] = options
	if errMsg != "" {
		data["Error"] = errMsg
	}
	h.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   title,
		Section: "categories",
		Data:    data,
	})
}

// parseCategoryForm reads the category form fields. An empty or malformed
// parent value means root.
func parseCategoryForm(r *http.Request) (title string, parentID *uuid.UUID) {
	title = strings.TrimSpace(r.FormValue("title"))
	if raw := r.FormValue("parent_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			parentID = &id
		}
	}
	return title, parentID
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"newsdesk/internal/models"
	"newsdesk/internal/pagination"
	"newsdesk/internal/render"
)

// UserList renders the paginated user listing.
func (h *Web) UserList(w http.ResponseWriter, r *http.Request) {
	items, err := h.users.List()
	if err != nil {
		slog.Error("list users failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := pagination.ParsePage(r.URL.Query().Get("page"))
	window := webPager.Window(len(items), page)

	h.renderer.Page(w, r, "user_list", &render.PageData{
		Title:   "Users",
		Section: "users",
		Data: map[string]any{
			"Items": pagination.Paginate(items, window),
			"Pager": pagerFrom(window),
		},
	})
}

// UserUpdatePage renders the user edit form.
func (h *Web) UserUpdatePage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "user_form", &render.PageData{
		Title:   "Edit user",
		Section: "users",
		Data:    map[string]any{"Username": user.Username},
	})
}

// UserUpdateSubmit renames a user and optionally changes their password.
// A blank password keeps the current one.
func (h *Web) UserUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	password2 := r.FormValue("password2")

	renderErr := func(msg string) {
		h.renderer.Page(w, r, "user_form", &render.PageData{
			Title:   "Edit user",
			Section: "users",
			Data:    map[string]any{"Username": username, "Error": msg},
		})
	}

	if msg := validateUsername(username); msg != "" {
		renderErr(msg)
		return
	}
	if password != "" && password != password2 {
		renderErr("Passwords do not match.")
		return
	}

	if username != user.Username {
		existing, err := h.users.FindByUsername(username)
		if err != nil {
			slog.Error("user lookup failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if existing != nil {
			renderErr("That username is taken.")
			return
		}
	}

	if err := h.users.Update(user.ID, username, password); err != nil {
		slog.Error("update user failed", "error", err, "id", user.ID)
		renderErr("Could not save the user.")
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// UserDeletePage renders the delete confirmation, warning that the user's
// articles go with them.
func (h *Web) UserDeletePage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "user_delete", &render.PageData{
		Title:   "Delete user",
		Section: "users",
		Data:    map[string]any{"User": user},
	})
}

// UserDeleteSubmit removes the user; their articles cascade in the database.
func (h *Web) UserDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(user.ID); err != nil {
		slog.Error("delete user failed", "error", err, "id", user.ID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// loadUser fetches the user named by the route, writing a 404 and
// returning ok=false when they do not exist.
func (h *Web) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := urlID(r)
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		slog.Error("find user failed", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}
	if user == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return user, true
}

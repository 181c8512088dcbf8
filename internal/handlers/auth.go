// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"newsdesk/internal/middleware"
	"newsdesk/internal/render"
	"newsdesk/internal/session"
)

// LoginPage renders the sign-in form. Authenticated users are sent
// straight to the news list.
func (h *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign in",
		Data:  map[string]any{},
	})
}

// LoginSubmit verifies credentials and creates a session. Failures render
// the form again with a generic error so usernames cannot be probed.
func (h *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	fail := func() {
		w.WriteHeader(http.StatusUnauthorized)
		h.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign in",
			Data:  map[string]any{"Error": "Invalid username or password."},
		})
	}

	user, err := h.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil || !h.userStore.CheckPassword(user, password) {
		fail()
		return
	}

	_, err = h.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the sign-in page.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SignUpPage renders the account creation form.
func (h *Auth) SignUpPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderer.Page(w, r, "sign_up", &render.PageData{
		Title: "Sign up",
		Data:  map[string]any{},
	})
}

// SignUpSubmit creates a new user account and signs them in.
func (h *Auth) SignUpSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password1 := r.FormValue("password1")
	password2 := r.FormValue("password2")

	renderErr := func(msg string) {
		h.renderer.Page(w, r, "sign_up", &render.PageData{
			Title: "Sign up",
			Data:  map[string]any{"Error": msg, "Username": username},
		})
	}

	if msg := validateUsername(username); msg != "" {
		renderErr(msg)
		return
	}
	if msg := validatePasswordPair(password1, password2); msg != "" {
		renderErr(msg)
		return
	}

	existing, err := h.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("sign-up lookup failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		renderErr("That username is taken.")
		return
	}

	user, err := h.userStore.Create(username, password1)
	if err != nil {
		slog.Error("sign-up create failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	_, err = h.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

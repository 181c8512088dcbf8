// Package router sets up all HTTP routes and middleware chains for
// Newsdesk. Server-rendered pages sit behind session auth with CSRF
// protection; the JSON API sits behind its own auth guard.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/session"
	"newsdesk/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, pages *handlers.Web, auth *handlers.Auth, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Auth pages — rate limited against credential stuffing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(loginLimiter.Handler)

		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Get("/sign_up", auth.SignUpPage)
		r.Post("/sign_up", auth.SignUpSubmit)
	})
	r.Get("/logout", auth.Logout)

	// Server-rendered pages — authenticated, CSRF-protected.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)

		// News
		r.Get("/", pages.NewsList)
		r.Route("/news", func(r chi.Router) {
			r.Get("/add", pages.NewsCreatePage)
			r.Post("/add", pages.NewsCreateSubmit)
			r.Get("/{id}", pages.NewsDetail)
			r.Get("/{id}/update", pages.NewsUpdatePage)
			r.Post("/{id}/update", pages.NewsUpdateSubmit)
			r.Get("/{id}/delete", pages.NewsDeletePage)
			r.Post("/{id}/delete", pages.NewsDeleteSubmit)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", pages.CategoryList)
			r.Get("/add", pages.CategoryCreatePage)
			r.Post("/add", pages.CategoryCreateSubmit)
			r.Get("/{id}/update", pages.CategoryUpdatePage)
			r.Post("/{id}/update", pages.CategoryUpdateSubmit)
			r.Get("/{id}/delete", pages.CategoryDeletePage)
			r.Post("/{id}/delete", pages.CategoryDeleteSubmit)
		})

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Get("/", pages.UserList)
			r.Get("/{id}/update", pages.UserUpdatePage)
			r.Post("/{id}/update", pages.UserUpdateSubmit)
			r.Get("/{id}/delete", pages.UserDeletePage)
			r.Post("/{id}/delete", pages.UserDeleteSubmit)
		})
	})

	// Read-only JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuthAPI)

		r.Get("/category/", api.CategoryList)
		r.Get("/news/", api.NewsList)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

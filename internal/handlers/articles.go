// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"newsdesk/internal/markdown"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/pagination"
	"newsdesk/internal/render"
	"newsdesk/internal/slug"
)

// maxUploadSize bounds multipart article forms (image included).
const maxUploadSize = 10 << 20 // 10 MiB

// NewsList renders the paginated article listing. This is the site's
// front page.
func (h *Web) NewsList(w http.ResponseWriter, r *http.Request) {
	items, err := h.articles.List()
	if err != nil {
		slog.Error("list articles failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := pagination.ParsePage(r.URL.Query().Get("page"))
	window := webPager.Window(len(items), page)

	h.renderer.Page(w, r, "news_list", &render.PageData{
		Title:   "News",
		Section: "news",
		Data: map[string]any{
			"Items": pagination.Paginate(items, window),
			"Pager": pagerFrom(window),
		},
	})
}

// NewsDetail renders a single article with its category and author.
func (h *Web) NewsDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		http.NotFound(w, r)
		return
	}

	var category *models.Category
	if article.CategoryID != nil {
		category, err = h.categories.FindByID(*article.CategoryID)
		if err != nil {
			slog.Error("find category failed", "error", err, "id", *article.CategoryID)
		}
	}

	var author *models.User
	if article.AuthorID != nil {
		author, err = h.users.FindByID(*article.AuthorID)
		if err != nil {
			slog.Error("find author failed", "error", err, "id", *article.AuthorID)
		}
	}

	h.renderer.Page(w, r, "news_detail", &render.PageData{
		Title:   article.Title,
		Section: "news",
		Data: map[string]any{
			"Article":         article,
			"Category":        category,
			"Author":          author,
			"ImageURL":        h.imageURL(article),
			"DescriptionHTML": markdown.ToHTML(article.Description),
		},
	})
}

// NewsCreatePage renders the empty article form.
func (h *Web) NewsCreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderArticleForm(w, r, "Add article", map[string]any{
		"IsNew":       true,
		"Title":       "",
		"Description": "",
		"CategoryID":  (*uuid.UUID)(nil),
	}, "")
}

// NewsCreateSubmit validates the form and creates the article. The author
// is taken from the session, never from the form.
func (h *Web) NewsCreateSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	title, description, categoryID, image, parseErr := h.parseArticleForm(r)

	formData := map[string]any{
		"IsNew":       true,
		"Title":       title,
		"Description": description,
		"CategoryID":  categoryID,
	}

	if parseErr != "" {
		h.renderArticleForm(w, r, "Add article", formData, parseErr)
		return
	}
	if msg := validateArticle(title, description); msg != "" {
		h.renderArticleForm(w, r, "Add article", formData, msg)
		return
	}

	article := &models.Article{
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		Image:       image,
	}

	created, err := h.articles.Create(article, sess.UserID)
	if err != nil {
		slog.Error("create article failed", "error", err)
		h.renderArticleForm(w, r, "Add article", formData, "Could not save the article.")
		return
	}

	http.Redirect(w, r, "/news/"+created.ID.String(), http.StatusSeeOther)
}

// NewsUpdatePage renders the form prefilled with the article's fields.
func (h *Web) NewsUpdatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		http.NotFound(w, r)
		return
	}

	h.renderArticleForm(w, r, "Edit article", map[string]any{
		"IsNew":       false,
		"Title":       article.Title,
		"Description": article.Description,
		"CategoryID":  article.CategoryID,
	}, "")
}

// NewsUpdateSubmit applies form changes to an existing article. The image
// is replaced only when a new file was uploaded.
func (h *Web) NewsUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		http.NotFound(w, r)
		return
	}

	title, description, categoryID, image, parseErr := h.parseArticleForm(r)

	formData := map[string]any{
		"IsNew":       false,
		"Title":       title,
		"Description": description,
		"CategoryID":  categoryID,
	}

	if parseErr != "" {
		h.renderArticleForm(w, r, "Edit article", formData, parseErr)
		return
	}
	if msg := validateArticle(title, description); msg != "" {
		h.renderArticleForm(w, r, "Edit article", formData, msg)
		return
	}

	article.Title = title
	article.Description = description
	article.CategoryID = categoryID
	if image != nil {
		// Drop the old object once the new one is in place.
		if old := article.Image; old != nil && h.storage != nil {
			if err := h.storage.Delete(r.Context(), *old); err != nil {
				slog.Warn("delete old image failed", "error", err, "key", *old)
			}
		}
		article.Image = image
	}

	if err := h.articles.Update(article); err != nil {
		slog.Error("update article failed", "error", err, "id", id)
		h.renderArticleForm(w, r, "Edit article", formData, "Could not save the article.")
		return
	}

	http.Redirect(w, r, "/news/"+article.ID.String(), http.StatusSeeOther)
}

// NewsDeletePage renders the delete confirmation.
func (h *Web) NewsDeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		http.NotFound(w, r)
		return
	}

	h.renderer.Page(w, r, "news_delete", &render.PageData{
		Title:   "Delete article",
		Section: "news",
		Data:    map[string]any{"Article": article},
	})
}

// NewsDeleteSubmit removes the article and its stored image.
func (h *Web) NewsDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		http.NotFound(w, r)
		return
	}

	if article.Image != nil && h.storage != nil {
		if err := h.storage.Delete(r.Context(), *article.Image); err != nil {
			slog.Warn("delete image failed", "error", err, "key", *article.Image)
		}
	}

	if err := h.articles.Delete(id); err != nil {
		slog.Error("delete article failed", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderArticleForm renders the article form with the category dropdown
// populated from the flattened tree.
func (h *Web) renderArticleForm(w http.ResponseWriter, r *http.Request, title string, data map[string]any, errMsg string) {
	categories, err := h.categories.FlatTree()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	data["Categories"] = categories
	if errMsg != "" {
		data["Error"] = errMsg
	}
	h.renderer.Page(w, r, "news_form", &render.PageData{
		Title:   title,
		Section: "news",
		Data:    data,
	})
}

// parseArticleForm reads the multipart article form. The returned image
// key is nil when no file was uploaded; parseErr is a user-facing message
// when the form or the upload could not be processed.
func (h *Web) parseArticleForm(r *http.Request) (title, description string, categoryID *uuid.UUID, image *string, parseErr string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", "", nil, nil, "Could not read the form (is the image too large?)."
	}

	title = strings.TrimSpace(r.FormValue("title"))
	description = r.FormValue("description")

	if raw := r.FormValue("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			categoryID = &id
		}
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return title, description, categoryID, nil, ""
	}
	if err != nil {
		return title, description, categoryID, nil, "Could not read the uploaded image."
	}
	defer file.Close()

	if h.storage == nil {
		return title, description, categoryID, nil, "Image uploads are not enabled on this server."
	}

	key, err := h.uploadImage(r, file, header)
	if err != nil {
		slog.Error("image upload failed", "error", err)
		return title, description, categoryID, nil, "Could not upload the image."
	}
	return title, description, categoryID, &key, ""
}

// uploadImage stores the uploaded file under a slugged, collision-free
// key, preserving the original extension.
func (h *Web) uploadImage(r *http.Request, file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	base := slug.Generate(strings.TrimSuffix(filepath.Base(header.Filename), ext))
	if base == "" {
		base = "image"
	}
	key := fmt.Sprintf("news/%s-%s%s", base, uuid.New(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		return "", err
	}
	return key, nil
}

// imageURL resolves an article's stored image key to a public URL.
func (h *Web) imageURL(a *models.Article) string {
	if a.Image == nil || h.storage == nil {
		return ""
	}
	return h.storage.FileURL(*a.Image)
}

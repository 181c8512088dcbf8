// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article represents a news item. Category and author are both optional
// references; deleting either cascades to the article.
type Article struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	AuthorID    *uuid.UUID `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       *string    `json:"image"` // object storage key, nil when no image uploaded
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasImage returns true if the article has an uploaded image.
func (a *Article) HasImage() bool {
	return a.Image != nil && *a.Image != ""
}

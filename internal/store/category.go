// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// ErrCategoryCycle is returned when a parent assignment would make a
// category its own ancestor. The operation is aborted and nothing is written.
var ErrCategoryCycle = errors.New("category cannot be its own ancestor")

// CategoryStore manages the hierarchical category forest in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, title, parent_id, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Title, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories in insertion order.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. A non-nil parent must
// reference an existing category.
func (s *CategoryStore) Create(title string, parentID *uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (title, parent_id)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		title, parentID,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies a category's title and parent. The cycle check and the
// write run in a single transaction with the walked ancestor rows locked,
// so two concurrent re-parent operations cannot each pass the check and
// commit a cycle between them.
func (s *CategoryStore) Update(id uuid.UUID, title string, parentID *uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	defer tx.Rollback()

	if parentID != nil {
		cyclic, err := wouldCycle(tx, id, *parentID)
		if err != nil {
			return err
		}
		if cyclic {
			return ErrCategoryCycle
		}
	}

	if _, err := tx.Exec(`
		UPDATE categories SET title = $1, parent_id = $2, updated_at = NOW()
		WHERE id = $3
	`, title, parentID, id); err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. The FK constraints cascade the delete
// to descendant categories and to every article attached to any of them;
// the single statement keeps the whole cascade atomic.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Count returns the number of categories.
func (s *CategoryStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// wouldCycle walks the ancestor chain starting at the proposed parent and
// reports whether it reaches id. Each visited row is locked FOR UPDATE, so
// a concurrent re-parent of any ancestor blocks until this transaction
// commits. The walk is bounded by the total category count, so a
// pre-existing corrupt cycle cannot loop forever.
func wouldCycle(tx *sql.Tx, id, parentID uuid.UUID) (bool, error) {
	if id == parentID {
		return true, nil
	}

	var limit int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&limit); err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}

	current := parentID
	for i := 0; i < limit; i++ {
		var next *uuid.UUID
		err := tx.QueryRow(`SELECT parent_id FROM categories WHERE id = $1 FOR UPDATE`, current).Scan(&next)
		if err == sql.ErrNoRows {
			return false, nil // Parent chain left the table — no cycle possible.
		}
		if err != nil {
			return false, fmt.Errorf("walk ancestors: %w", err)
		}
		if next == nil {
			return false, nil // Reached a root.
		}
		if *next == id {
			return true, nil
		}
		current = *next
	}

	// Walked more links than categories exist: the chain itself is cyclic.
	return true, nil
}

// Tree returns categories as a nested tree structure.
func (s *CategoryStore) Tree() ([]models.Category, error) {
	flat, err := s.List()
	if err != nil {
		return nil, err
	}
	return buildTree(flat, nil, 0), nil
}

// buildTree recursively builds a tree from a flat list.
func buildTree(flat []models.Category, parentID *uuid.UUID, depth int) []models.Category {
	var result []models.Category
	for _, c := range flat {
		if ptrEqual(c.ParentID, parentID) {
			c.Depth = depth
			c.Children = buildTree(flat, &c.ID, depth+1)
			result = append(result, c)
		}
	}
	return result
}

// ptrEqual compares two *uuid.UUID for equality (both nil or same value).
func ptrEqual(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// FlatTree returns categories as a flat list ordered for display,
// with Depth set for indentation. Useful for <select> dropdowns.
func (s *CategoryStore) FlatTree() ([]models.Category, error) {
	tree, err := s.Tree()
	if err != nil {
		return nil, err
	}
	var result []models.Category
	flattenTree(tree, &result)
	return result, nil
}

// flattenTree walks a category tree depth-first, appending to result.
func flattenTree(cats []models.Category, result *[]models.Category) {
	for _, c := range cats {
		*result = append(*result, c)
		if len(c.Children) > 0 {
			flattenTree(c.Children, result)
		}
	}
}

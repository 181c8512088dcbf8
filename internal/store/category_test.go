// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func TestCategoryStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	title := "test-cat-create-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, title) })

	created, err := s.Create(title, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.ParentID != nil {
		t.Error("expected nil parent for root category")
	}
	if !created.IsRoot() {
		t.Error("IsRoot: got false, want true")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected category, got nil")
	}
	if found.Title != title {
		t.Errorf("title: got %q, want %q", found.Title, title)
	}
}

func TestCategoryStoreFindByIDMissing(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	found, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected nil for random UUID")
	}
}

func TestCategoryStoreUpdateParent(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	titleA := "test-cat-upd-a-" + uuid.NewString()[:8]
	titleB := "test-cat-upd-b-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, titleA, titleB) })

	a, err := s.Create(titleA, nil)
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	b, err := s.Create(titleB, nil)
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}

	if err := s.Update(b.ID, titleB, &a.ID); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, _ := s.FindByID(b.ID)
	if found.ParentID == nil || *found.ParentID != a.ID {
		t.Errorf("parent: got %v, want %s", found.ParentID, a.ID)
	}
}

func TestCategoryStoreRejectsSelfParent(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	title := "test-cat-self-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, title) })

	c, err := s.Create(title, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = s.Update(c.ID, title, &c.ID)
	if !errors.Is(err, ErrCategoryCycle) {
		t.Errorf("expected ErrCategoryCycle, got %v", err)
	}

	// Nothing was written.
	found, _ := s.FindByID(c.ID)
	if found.ParentID != nil {
		t.Error("parent must remain nil after rejected update")
	}
}

func TestCategoryStoreRejectsCycle(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	titleA := "test-cat-cyc-a-" + uuid.NewString()[:8]
	titleB := "test-cat-cyc-b-" + uuid.NewString()[:8]
	titleC := "test-cat-cyc-c-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, titleA, titleB, titleC) })

	a, _ := s.Create(titleA, nil)
	b, _ := s.Create(titleB, &a.ID)
	c, _ := s.Create(titleC, &b.ID)

	// a → b → c exists; re-parenting a under c would close the loop.
	err := s.Update(a.ID, titleA, &c.ID)
	if !errors.Is(err, ErrCategoryCycle) {
		t.Errorf("expected ErrCategoryCycle, got %v", err)
	}
}

func TestCategoryStoreConcurrentReparent(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	titleA := "test-cat-conc-a-" + uuid.NewString()[:8]
	titleB := "test-cat-conc-b-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, titleA, titleB) })

	a, err := s.Create(titleA, nil)
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	b, err := s.Create(titleB, nil)
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}

	// Re-parent a under b and b under a at the same time. At most one may
	// commit; the row locks taken during the ancestor walk force the other
	// to either see the new edge and reject, or abort on the lock conflict.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Update(a.ID, titleA, &b.ID)
	}()
	go func() {
		defer wg.Done()
		s.Update(b.ID, titleB, &a.ID)
	}()
	wg.Wait()

	// Whatever the interleaving, walking up from either category must
	// reach a root without revisiting a node.
	for _, start := range []uuid.UUID{a.ID, b.ID} {
		seen := map[uuid.UUID]bool{}
		cur, err := s.FindByID(start)
		if err != nil || cur == nil {
			t.Fatalf("FindByID %s: %v", start, err)
		}
		for cur.ParentID != nil {
			if seen[cur.ID] {
				t.Fatalf("cycle committed through %s", cur.ID)
			}
			seen[cur.ID] = true
			cur, err = s.FindByID(*cur.ParentID)
			if err != nil || cur == nil {
				t.Fatalf("walk parents: %v", err)
			}
		}
	}
}

func TestCategoryStoreCascadeDelete(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	articles := NewArticleStore(db)

	titleA := "test-cat-casc-a-" + uuid.NewString()[:8]
	titleB := "test-cat-casc-b-" + uuid.NewString()[:8]
	articleTitle := "test-art-casc-" + uuid.NewString()[:8]
	username := "test-casc-author-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, titleA, titleB) })
	t.Cleanup(func() { cleanArticles(t, db, articleTitle) })

	author := testUser(t, db, username)

	a, err := s.Create(titleA, nil)
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	b, err := s.Create(titleB, &a.ID)
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}

	x, err := articles.Create(&models.Article{
		CategoryID:  &b.ID,
		Title:       articleTitle,
		Description: "attached to the child category",
	}, author.ID)
	if err != nil {
		t.Fatalf("Create article: %v", err)
	}

	// Deleting the root must take the child category and its article with it.
	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, _ := s.FindByID(b.ID); got != nil {
		t.Error("child category survived cascade delete")
	}
	if got, _ := articles.FindByID(x.ID); got != nil {
		t.Error("article survived cascade delete")
	}
}

func TestCategoryStoreList(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	title1 := "test-cat-list-1-" + uuid.NewString()[:8]
	title2 := "test-cat-list-2-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, title1, title2) })

	c1, _ := s.Create(title1, nil)
	c2, _ := s.Create(title2, nil)

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	// Insertion order: c1 before c2.
	pos := map[uuid.UUID]int{}
	for i, c := range all {
		pos[c.ID] = i
	}
	i1, ok1 := pos[c1.ID]
	i2, ok2 := pos[c2.ID]
	if !ok1 || !ok2 {
		t.Fatal("created categories missing from List")
	}
	if i1 >= i2 {
		t.Errorf("insertion order violated: %d >= %d", i1, i2)
	}
}

func TestCategoryStoreFlatTree(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	titleRoot := "test-cat-tree-root-" + uuid.NewString()[:8]
	titleChild := "test-cat-tree-child-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, titleRoot, titleChild) })

	root, _ := s.Create(titleRoot, nil)
	child, _ := s.Create(titleChild, &root.ID)

	flat, err := s.FlatTree()
	if err != nil {
		t.Fatalf("FlatTree: %v", err)
	}

	var rootDepth, childDepth = -1, -1
	var rootIdx, childIdx int
	for i, c := range flat {
		switch c.ID {
		case root.ID:
			rootDepth, rootIdx = c.Depth, i
		case child.ID:
			childDepth, childIdx = c.Depth, i
		}
	}

	if rootDepth != 0 {
		t.Errorf("root depth: got %d, want 0", rootDepth)
	}
	if childDepth != 1 {
		t.Errorf("child depth: got %d, want 1", childDepth)
	}
	if childIdx <= rootIdx {
		t.Error("child must follow its parent in the flattened tree")
	}
}

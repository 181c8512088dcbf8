package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func TestArticleStoreCreateSetsAuthor(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-art-author-" + uuid.NewString()[:8]
	username := "test-art-author-u-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title) })

	author := testUser(t, db, username)

	// A forged author on the incoming article must be discarded.
	forged := uuid.New()
	created, err := s.Create(&models.Article{
		AuthorID:    &forged,
		Title:       title,
		Description: "body",
	}, author.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.AuthorID == nil || *created.AuthorID != author.ID {
		t.Errorf("author: got %v, want %s", created.AuthorID, author.ID)
	}
}

func TestArticleStoreCreateWithoutActor(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	_, err := s.Create(&models.Article{Title: "no author"}, uuid.Nil)
	if !errors.Is(err, ErrNoAuthor) {
		t.Errorf("expected ErrNoAuthor, got %v", err)
	}
}

func TestArticleStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-art-upd-" + uuid.NewString()[:8]
	username := "test-art-upd-u-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title, title+"-v2") })

	author := testUser(t, db, username)

	created, err := s.Create(&models.Article{Title: title, Description: "v1"}, author.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Title = title + "-v2"
	created.Description = "v2"
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, _ := s.FindByID(created.ID)
	if found.Description != "v2" {
		t.Errorf("description: got %q, want %q", found.Description, "v2")
	}
	// Author untouched by update.
	if found.AuthorID == nil || *found.AuthorID != author.ID {
		t.Errorf("author changed on update: got %v", found.AuthorID)
	}
}

func TestArticleStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title := "test-art-del-" + uuid.NewString()[:8]
	username := "test-art-del-u-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title) })

	author := testUser(t, db, username)

	created, err := s.Create(&models.Article{Title: title}, author.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if found, _ := s.FindByID(created.ID); found != nil {
		t.Error("expected nil after delete")
	}
}

func TestArticleStoreAuthorCascade(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)
	users := NewUserStore(db)

	title := "test-art-ucasc-" + uuid.NewString()[:8]
	username := "test-art-ucasc-u-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title) })

	author := testUser(t, db, username)

	created, err := s.Create(&models.Article{Title: title}, author.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Deleting the author removes their articles.
	if err := users.Delete(author.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if found, _ := s.FindByID(created.ID); found != nil {
		t.Error("article survived author delete")
	}
}

func TestArticleStoreListInsertionOrder(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	title1 := "test-art-list-1-" + uuid.NewString()[:8]
	title2 := "test-art-list-2-" + uuid.NewString()[:8]
	username := "test-art-list-u-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanArticles(t, db, title1, title2) })

	author := testUser(t, db, username)

	a1, _ := s.Create(&models.Article{Title: title1}, author.ID)
	a2, _ := s.Create(&models.Article{Title: title2}, author.ID)

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	pos := map[uuid.UUID]int{}
	for i, a := range all {
		pos[a.ID] = i
	}
	if pos[a1.ID] >= pos[a2.ID] {
		t.Error("insertion order violated")
	}
}

package store

import (
	"testing"

	"github.com/bookgrove/bookgrove/model"
)

func TestBookCRUD(t *testing.T) {
	db := newTestDB(t, "test_for_book")
	s := NewStore(db)

	user, err := s.CreateUser(&model.User{
		Username:     "shelver",
		PasswordHash: "test",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	book, err := s.CreateBook(&model.Book{
		Title:         "The Left Hand of Darkness",
		Author:        "Ursula K. Le Guin",
		Genre:         "Science Fiction",
		PublishedYear: 1969,
		OwnerID:       &user.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}
	if book.ID == 0 {
		t.Fatalf("Expected a row id, got 0")
	}
	if book.UUID == "" {
		t.Fatalf("Expected a generated uuid")
	}

	got, err := s.GetBook(&model.FindBook{ID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if got == nil || got.Title != book.Title {
		t.Fatalf("Got wrong book: %+v", got)
	}
	if !got.IsOwnedBy(user.ID) {
		t.Fatalf("Expected book to be owned by user %d", user.ID)
	}

	newTitle := "The Dispossessed"
	updated, err := s.UpdateBook(&model.UpdateBook{ID: book.ID, Title: &newTitle})
	if err != nil {
		t.Fatalf("Failed to update book: %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("Expected title %q, got %q", newTitle, updated.Title)
	}
	if updated.Author != book.Author || updated.Genre != book.Genre {
		t.Fatalf("Partial update touched other fields: %+v", updated)
	}

	if err := s.RemoveBook(book.ID); err != nil {
		t.Fatalf("Failed to remove book: %v", err)
	}
	got, err = s.GetBook(&model.FindBook{ID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if got != nil {
		t.Fatalf("Expected book to be gone, got %+v", got)
	}
}

func TestListBooksByGenre(t *testing.T) {
	db := newTestDB(t, "test_for_book_list")
	s := NewStore(db)

	user, err := s.CreateUser(&model.User{
		Username:     "curator",
		PasswordHash: "test",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	for _, b := range []model.Book{
		{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", PublishedYear: 1965},
		{Title: "Gaudy Night", Author: "Dorothy L. Sayers", Genre: "Mystery", PublishedYear: 1935},
		{Title: "Neuromancer", Author: "William Gibson", Genre: "Science Fiction", PublishedYear: 1984},
	} {
		b.OwnerID = &user.ID
		if _, err := s.CreateBook(&b); err != nil {
			t.Fatalf("Failed to create book: %v", err)
		}
	}

	genre := "Science Fiction"
	list, err := s.ListBooks(&model.FindBook{Genre: &genre})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 science fiction books, got %d", len(list))
	}

	all, err := s.ListBooks(&model.FindBook{})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 books, got %d", len(all))
	}
}

func TestRemoveBookCascadesReviews(t *testing.T) {
	db := newTestDB(t, "test_for_book_cascade")
	s := NewStore(db)

	user, err := s.CreateUser(&model.User{
		Username:     "reader",
		PasswordHash: "test",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	book, err := s.CreateBook(&model.Book{
		Title:         "Piranesi",
		Author:        "Susanna Clarke",
		Genre:         "Fantasy",
		PublishedYear: 2020,
		OwnerID:       &user.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}
	if _, err := s.CreateReview(&model.Review{
		BookID:   book.ID,
		AuthorID: user.ID,
		Rating:   5,
		Text:     "A quiet, strange and beautiful book.",
	}); err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}

	if err := s.RemoveBook(book.ID); err != nil {
		t.Fatalf("Failed to remove book: %v", err)
	}

	reviews, err := s.ListReviews(&model.FindReview{BookID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to list reviews: %v", err)
	}
	if len(reviews) != 0 {
		t.Fatalf("Expected reviews to be removed with the book, got %d", len(reviews))
	}
}

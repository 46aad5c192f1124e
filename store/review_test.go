package store

import (
	"testing"

	apperrors "github.com/bookgrove/bookgrove/errors"
	"github.com/bookgrove/bookgrove/model"
)

func TestReviewCRUD(t *testing.T) {
	db := newTestDB(t, "test_for_review")
	s := NewStore(db)

	user, err := s.CreateUser(&model.User{
		Username:     "critic",
		PasswordHash: "test",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	book, err := s.CreateBook(&model.Book{
		Title:         "The Remains of the Day",
		Author:        "Kazuo Ishiguro",
		Genre:         "Classic",
		PublishedYear: 1989,
		OwnerID:       &user.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}

	review, err := s.CreateReview(&model.Review{
		BookID:   book.ID,
		AuthorID: user.ID,
		Rating:   4,
		Text:     "Restrained and devastating in equal measure.",
	})
	if err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}
	if review.ID == 0 || review.UUID == "" {
		t.Fatalf("Expected id and uuid on created review: %+v", review)
	}

	got, err := s.GetReview(&model.FindReview{BookID: &book.ID, AuthorID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to get review: %v", err)
	}
	if got == nil || got.ID != review.ID {
		t.Fatalf("Got wrong review: %+v", got)
	}

	updated, err := s.UpdateReview(&model.UpdateReview{
		ID:     review.ID,
		Rating: 5,
		Text:   "On a reread this is a clear five stars.",
	})
	if err != nil {
		t.Fatalf("Failed to update review: %v", err)
	}
	if updated.Rating != 5 {
		t.Fatalf("Expected rating 5, got %d", updated.Rating)
	}
	if updated.BookID != book.ID || updated.AuthorID != user.ID {
		t.Fatalf("Update touched immutable fields: %+v", updated)
	}

	if err := s.RemoveReview(review.ID); err != nil {
		t.Fatalf("Failed to remove review: %v", err)
	}
	got, err = s.GetReview(&model.FindReview{ID: &review.ID})
	if err != nil {
		t.Fatalf("Failed to get review: %v", err)
	}
	if got != nil {
		t.Fatalf("Expected review to be gone, got %+v", got)
	}
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	db := newTestDB(t, "test_for_review_duplicate")
	s := NewStore(db)

	user, err := s.CreateUser(&model.User{
		Username:     "onereview",
		PasswordHash: "test",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	book, err := s.CreateBook(&model.Book{
		Title:         "Middlemarch",
		Author:        "George Eliot",
		Genre:         "Classic",
		PublishedYear: 1871,
		OwnerID:       &user.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}

	if _, err := s.CreateReview(&model.Review{
		BookID:   book.ID,
		AuthorID: user.ID,
		Rating:   5,
		Text:     "A study of provincial life, and of everything else.",
	}); err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}

	_, err = s.CreateReview(&model.Review{
		BookID:   book.ID,
		AuthorID: user.ID,
		Rating:   3,
		Text:     "Trying to sneak in a second opinion here.",
	})
	if err == nil {
		t.Fatalf("Expected duplicate review to be rejected")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeDuplicateEntry) {
		t.Fatalf("Expected duplicate entry error, got %v", err)
	}
}

func TestListReviewsNewestFirst(t *testing.T) {
	db := newTestDB(t, "test_for_review_order")
	s := NewStore(db)

	book := seedBookWithReviewers(t, s, 3)

	reviews, err := s.ListReviews(&model.FindReview{BookID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to list reviews: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("Expected 3 reviews, got %d", len(reviews))
	}
	for i := 1; i < len(reviews); i++ {
		prev, cur := reviews[i-1], reviews[i]
		if prev.CreatedTs < cur.CreatedTs {
			t.Fatalf("Expected newest first, got %d before %d", prev.CreatedTs, cur.CreatedTs)
		}
		if prev.CreatedTs == cur.CreatedTs && prev.ID < cur.ID {
			t.Fatalf("Expected id to break ties descending, got %d before %d", prev.ID, cur.ID)
		}
	}
}

func seedBookWithReviewers(t *testing.T, s *Store, reviewers int) *model.Book {
	t.Helper()

	owner, err := s.CreateUser(&model.User{
		Username:     "owner",
		PasswordHash: "test",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	book, err := s.CreateBook(&model.Book{
		Title:         "The Name of the Rose",
		Author:        "Umberto Eco",
		Genre:         "Mystery",
		PublishedYear: 1980,
		OwnerID:       &owner.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}

	for i := 0; i < reviewers; i++ {
		reviewer, err := s.CreateUser(&model.User{
			Username:     "reviewer" + string(rune('a'+i)),
			PasswordHash: "test",
			Role:         model.RoleUser,
		})
		if err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		if _, err := s.CreateReview(&model.Review{
			BookID:   book.ID,
			AuthorID: reviewer.ID,
			Rating:   3 + i%3,
			Text:     "A labyrinth of a library and a labyrinth of a plot.",
		}); err != nil {
			t.Fatalf("Failed to create review: %v", err)
		}
	}
	return book
}

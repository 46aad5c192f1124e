package catalog

import (
	"testing"

	"github.com/bookgrove/bookgrove/config"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func TestAggregateAverageAndCount(t *testing.T) {
	books := []*model.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert"},
	}
	reviews := []*model.Review{
		{ID: 1, BookID: 1, AuthorID: 1, Rating: 4},
		{ID: 2, BookID: 1, AuthorID: 2, Rating: 5},
	}

	list := Aggregate(books, reviews)
	if len(list) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(list))
	}
	got := list[0]
	if got.AverageRating != 4.5 {
		t.Fatalf("Expected average 4.5, got %v", got.AverageRating)
	}
	if got.ReviewCount != 2 {
		t.Fatalf("Expected count 2, got %d", got.ReviewCount)
	}
	if got.RatingLabel != "4.5" {
		t.Fatalf("Expected label %q, got %q", "4.5", got.RatingLabel)
	}
}

func TestAggregateRoundsToOneDecimal(t *testing.T) {
	books := []*model.Book{{ID: 1, Title: "Emma"}}
	reviews := []*model.Review{
		{ID: 1, BookID: 1, AuthorID: 1, Rating: 5},
		{ID: 2, BookID: 1, AuthorID: 2, Rating: 4},
		{ID: 3, BookID: 1, AuthorID: 3, Rating: 4},
	}

	got := Aggregate(books, reviews)[0]
	// 13/3 = 4.333... rounds to 4.3
	if got.AverageRating != 4.3 {
		t.Fatalf("Expected average 4.3, got %v", got.AverageRating)
	}
	if got.RatingLabel != "4.3" {
		t.Fatalf("Expected label %q, got %q", "4.3", got.RatingLabel)
	}
}

func TestAggregateBookWithoutReviews(t *testing.T) {
	books := []*model.Book{{ID: 7, Title: "Piranesi"}}

	got := Aggregate(books, nil)[0]
	if got.AverageRating != 0 || got.ReviewCount != 0 {
		t.Fatalf("Expected zero aggregate, got %v/%d", got.AverageRating, got.ReviewCount)
	}
	if got.RatingLabel != NoRatingsLabel {
		t.Fatalf("Expected label %q, got %q", NoRatingsLabel, got.RatingLabel)
	}
}

func TestAggregateIgnoresOrphanReviews(t *testing.T) {
	books := []*model.Book{{ID: 1, Title: "Dune"}}
	reviews := []*model.Review{
		{ID: 1, BookID: 1, AuthorID: 1, Rating: 3},
		{ID: 2, BookID: 99, AuthorID: 1, Rating: 1}, // book is gone
	}

	list := Aggregate(books, reviews)
	if len(list) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(list))
	}
	if list[0].ReviewCount != 1 || list[0].AverageRating != 3 {
		t.Fatalf("Orphan review leaked into aggregate: %+v", list[0])
	}
}

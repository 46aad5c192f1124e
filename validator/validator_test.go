package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/bookgrove/bookgrove/config"
	apperrors "github.com/bookgrove/bookgrove/errors"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func TestValidateReviewDraftRating(t *testing.T) {
	text := strings.Repeat("x", 50)

	for _, rating := range []int{1, 3, 5} {
		if err := ValidateReviewDraft(rating, text); err != nil {
			t.Fatalf("Rating %d should be valid: %v", rating, err)
		}
	}
	for _, rating := range []int{0, -1, 6} {
		err := ValidateReviewDraft(rating, text)
		if !apperrors.IsValidation(err) {
			t.Fatalf("Rating %d should be rejected, got %v", rating, err)
		}
	}
}

func TestValidateReviewDraftTextLength(t *testing.T) {
	cases := []struct {
		length int
		valid  bool
	}{
		{9, false},
		{10, true},
		{1000, true},
		{1001, false},
	}
	for _, tc := range cases {
		err := ValidateReviewDraft(3, strings.Repeat("x", tc.length))
		if tc.valid && err != nil {
			t.Fatalf("Text of length %d should be valid: %v", tc.length, err)
		}
		if !tc.valid && !apperrors.IsValidation(err) {
			t.Fatalf("Text of length %d should be rejected, got %v", tc.length, err)
		}
	}
}

func TestValidateReviewDraftTrimsWhitespace(t *testing.T) {
	// Nine characters padded with spaces stays nine characters.
	err := ValidateReviewDraft(3, "  ninechars  ")
	if !apperrors.IsValidation(err) {
		t.Fatalf("Padding must not rescue a short text, got %v", err)
	}

	if err := ValidateReviewDraft(3, "  "+strings.Repeat("x", 10)+"  "); err != nil {
		t.Fatalf("Trimmed text of length 10 should be valid: %v", err)
	}
}

func TestValidateBookCreateRequest(t *testing.T) {
	valid := &model.BookCreateRequest{
		Title:         "Dune",
		Author:        "Frank Herbert",
		Genre:         "Science Fiction",
		PublishedYear: 1965,
	}
	if err := ValidateBookCreateRequest(valid); err != nil {
		t.Fatalf("Expected valid request: %v", err)
	}

	missingTitle := *valid
	missingTitle.Title = ""
	if err := ValidateBookCreateRequest(&missingTitle); !apperrors.IsValidation(err) {
		t.Fatalf("Expected rejection for empty title, got %v", err)
	}

	missingAuthor := *valid
	missingAuthor.Author = ""
	if err := ValidateBookCreateRequest(&missingAuthor); !apperrors.IsValidation(err) {
		t.Fatalf("Expected rejection for empty author, got %v", err)
	}
}

func TestValidatePublishedYearBounds(t *testing.T) {
	nextYear := time.Now().Year() + 1

	book := &model.BookCreateRequest{Title: "t", Author: "a"}

	book.PublishedYear = 999
	if err := ValidateBookCreateRequest(book); !apperrors.IsValidation(err) {
		t.Fatalf("Expected rejection for year 999, got %v", err)
	}

	book.PublishedYear = 1000
	if err := ValidateBookCreateRequest(book); err != nil {
		t.Fatalf("Year 1000 should be valid: %v", err)
	}

	// Upcoming releases are allowed one year ahead.
	book.PublishedYear = nextYear
	if err := ValidateBookCreateRequest(book); err != nil {
		t.Fatalf("Year %d should be valid: %v", nextYear, err)
	}

	book.PublishedYear = nextYear + 1
	if err := ValidateBookCreateRequest(book); !apperrors.IsValidation(err) {
		t.Fatalf("Expected rejection for year %d, got %v", nextYear+1, err)
	}
}

func TestValidateBookUpdateRequestPartial(t *testing.T) {
	// A nil field means "leave as is" and is never validated.
	if err := ValidateBookUpdateRequest(&model.BookUpdateRequest{}); err != nil {
		t.Fatalf("Empty patch should be valid: %v", err)
	}

	empty := ""
	if err := ValidateBookUpdateRequest(&model.BookUpdateRequest{Title: &empty}); !apperrors.IsValidation(err) {
		t.Fatalf("Expected rejection for empty title, got %v", err)
	}

	year := 999
	if err := ValidateBookUpdateRequest(&model.BookUpdateRequest{PublishedYear: &year}); !apperrors.IsValidation(err) {
		t.Fatalf("Expected rejection for year 999, got %v", err)
	}
}

package catalog // import "github.com/bookgrove/bookgrove/catalog"

import (
	"math"
	"strconv"

	"github.com/bookgrove/bookgrove/model"
)

// NoRatingsLabel is shown for books without reviews instead of "0.0".
const NoRatingsLabel = "No ratings"

// RatingAggregate is derived from raw review rows and never persisted.
type RatingAggregate struct {
	BookID  int     `json:"book_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// BookSummary is a book joined with its rating aggregate, the unit the
// pipeline filters, sorts and pages.
type BookSummary struct {
	*model.Book
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	RatingLabel   string  `json:"rating_label"`
}

// Aggregate joins reviews to books and computes one aggregate per book.
// It is a pure function of its inputs: output order follows books, a book
// without reviews gets (0, 0), and reviews pointing at unknown books are
// ignored. The store cascades book deletion, so such rows should not
// occur, but a stale snapshot must not panic on them.
func Aggregate(books []*model.Book, reviews []*model.Review) []*BookSummary {
	type sum struct {
		total int
		count int
	}
	sums := make(map[int]*sum, len(books))
	for _, book := range books {
		sums[book.ID] = &sum{}
	}
	for _, review := range reviews {
		s, ok := sums[review.BookID]
		if !ok {
			continue
		}
		s.total += review.Rating
		s.count++
	}

	list := make([]*BookSummary, 0, len(books))
	for _, book := range books {
		s := sums[book.ID]
		summary := &BookSummary{
			Book:        book,
			RatingLabel: NoRatingsLabel,
		}
		if s.count > 0 {
			summary.AverageRating = round1(float64(s.total) / float64(s.count))
			summary.ReviewCount = s.count
			summary.RatingLabel = strconv.FormatFloat(summary.AverageRating, 'f', 1, 64)
		}
		list = append(list, summary)
	}
	return list
}

// round1 rounds to one decimal, the display precision of ratings.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package model //import "github.com/bookgrove/bookgrove/model"

// Review is a star rating with free text, at most one per (author, book).
type Review struct {
	ID        int    `json:"id"`
	UUID      string `json:"uuid"`
	BookID    int    `json:"book_id"`
	AuthorID  int32  `json:"author_id"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	CreatedTs int64  `json:"created_ts"`
	UpdatedTs int64  `json:"updated_ts"`
}

type FindReview struct {
	ID       *int   `json:"id"`
	BookID   *int   `json:"book_id"`
	AuthorID *int32 `json:"author_id"`

	// The maximum number of reviews to return.
	Limit *int `json:"limit"`
}

// UpdateReview is restricted to rating and text; everything else on a
// review is immutable after creation.
type UpdateReview struct {
	ID     int
	Rating int
	Text   string
}

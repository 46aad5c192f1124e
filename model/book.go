package model //import "github.com/bookgrove/bookgrove/model"

// Book is a catalog entry. OwnerID is nil for system-seeded books, which
// no user may edit or delete.
type Book struct {
	ID            int    `json:"id"`
	UUID          string `json:"uuid"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"published_year"`
	OwnerID       *int32 `json:"owner_id"`
	CreatedTs     int64  `json:"created_ts"`
	UpdatedTs     int64  `json:"updated_ts"`
}

// IsOwnedBy reports whether the book was created by the given user.
// System-seeded books have no owner.
func (b *Book) IsOwnedBy(userID int32) bool {
	return b.OwnerID != nil && *b.OwnerID == userID
}

type FindBook struct {
	ID      *int    `json:"id"`
	UUID    *string `json:"uuid"`
	Title   *string `json:"title"`
	Author  *string `json:"author"`
	Genre   *string `json:"genre"`
	OwnerID *int32  `json:"owner_id"`

	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

type BookCreateRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"published_year"`
}

// BookUpdateRequest carries a partial update; nil fields are left as is.
type BookUpdateRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Description   *string `json:"description"`
	Genre         *string `json:"genre"`
	PublishedYear *int    `json:"published_year"`
}

type UpdateBook struct {
	ID            int
	Title         *string
	Author        *string
	Description   *string
	Genre         *string
	PublishedYear *int
}

package validator

import (
	"time"

	"github.com/bookgrove/bookgrove/config"
	apperrors "github.com/bookgrove/bookgrove/errors"
	"github.com/bookgrove/bookgrove/model"
)

func ValidateBookCreateRequest(book *model.BookCreateRequest) error {
	if book == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "book is nil")
	}
	if book.Title == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "title is empty")
	}
	if book.Author == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "author is empty")
	}
	return validatePublishedYear(book.PublishedYear)
}

func ValidateBookUpdateRequest(book *model.BookUpdateRequest) error {
	if book == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "book is nil")
	}
	if v := book.Title; v != nil && *v == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "title is empty")
	}
	if v := book.Author; v != nil && *v == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "author is empty")
	}
	if v := book.PublishedYear; v != nil {
		return validatePublishedYear(*v)
	}
	return nil
}

// validatePublishedYear allows next year for upcoming releases.
func validatePublishedYear(year int) error {
	maxYear := time.Now().Year() + 1
	if year < config.Opts.MinPublishYear || year > maxYear {
		return apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"published year must be between %d and %d", config.Opts.MinPublishYear, maxYear)
	}
	return nil
}

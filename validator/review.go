package validator // import "github.com/bookgrove/bookgrove/validator"

import (
	"strings"

	"github.com/bookgrove/bookgrove/config"
	apperrors "github.com/bookgrove/bookgrove/errors"
)

// ValidateReviewDraft checks a draft before it is allowed near the store.
// Rating must be a whole star within bounds, text length within the
// configured bounds, both inclusive.
func ValidateReviewDraft(rating int, text string) error {
	if rating < config.Opts.RatingMin || rating > config.Opts.RatingMax {
		return apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"rating must be between %d and %d", config.Opts.RatingMin, config.Opts.RatingMax)
	}
	length := len(strings.TrimSpace(text))
	if length < config.Opts.ReviewTextMin {
		return apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"review text must be at least %d characters", config.Opts.ReviewTextMin)
	}
	if length > config.Opts.ReviewTextMax {
		return apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"review text must be at most %d characters", config.Opts.ReviewTextMax)
	}
	return nil
}

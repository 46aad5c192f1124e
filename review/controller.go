package review // import "github.com/bookgrove/bookgrove/review"

import (
	"sync"

	apperrors "github.com/bookgrove/bookgrove/errors"
	"github.com/bookgrove/bookgrove/identity"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/validator"
	"go.uber.org/zap"
)

// State of the review editor.
type State string

const (
	// StateIdle means no draft is held.
	StateIdle State = "IDLE"
	// StateComposing means a draft is held locally, possibly bound to an
	// existing review (edit mode).
	StateComposing State = "COMPOSING"
	// StateSubmitting means a mutation is in flight. It doubles as the
	// mutual-exclusion gate: no second mutating call may start.
	StateSubmitting State = "SUBMITTING"
)

// Draft is the in-progress, not-yet-submitted review. ReviewID is set in
// edit mode and nil in create mode.
type Draft struct {
	BookID   int    `json:"book_id"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	ReviewID *int   `json:"review_id"`
}

// Store is the slice of the data store the controller mutates.
type Store interface {
	GetReview(find *model.FindReview) (*model.Review, error)
	CreateReview(create *model.Review) (*model.Review, error)
	UpdateReview(update *model.UpdateReview) (*model.Review, error)
	RemoveReview(id int) error
}

// Controller runs the single-review-editor-at-a-time state machine for
// one viewer session: Idle -> Composing -> Submitting -> Idle, with
// failed submissions falling back to Composing so the draft survives a
// retry. After every successful mutation onMutate fires so the catalog
// can refetch and reaggregate.
type Controller struct {
	store    Store
	provider identity.Provider
	onMutate func(bookID int)

	mu    sync.Mutex
	state State
	draft *Draft
}

func NewController(store Store, provider identity.Provider, onMutate func(bookID int)) *Controller {
	c := &Controller{
		store:    store,
		provider: provider,
		onMutate: onMutate,
		state:    StateIdle,
	}
	// A signed-out or switched identity must not keep another user's draft.
	provider.OnChange(func(*model.User) {
		c.reset()
	})
	return c
}

// State returns the current editor state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the held draft, or nil when idle.
func (c *Controller) Draft() *Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return nil
	}
	draft := *c.draft
	return &draft
}

// StartCompose opens a draft session. With an existing review the draft
// is pre-populated and bound to it (edit mode); otherwise it is blank
// (create mode). A new StartCompose replaces any previous draft, there is
// only one editor per viewer.
func (c *Controller) StartCompose(bookID int, existing *model.Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return apperrors.ErrSubmissionInFlight
	}

	draft := &Draft{BookID: bookID}
	if existing != nil {
		draft.BookID = existing.BookID
		draft.Rating = existing.Rating
		draft.Text = existing.Text
		reviewID := existing.ID
		draft.ReviewID = &reviewID
	}
	c.draft = draft
	c.state = StateComposing
	return nil
}

// SetDraft updates the held rating and text without validating; the user
// is still typing. Validation happens on Submit.
func (c *Controller) SetDraft(rating int, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return apperrors.ErrSubmissionInFlight
	}
	if c.state != StateComposing || c.draft == nil {
		return apperrors.New(apperrors.ErrCodeBusinessError, "no draft to update")
	}
	c.draft.Rating = rating
	c.draft.Text = text
	return nil
}

// Submit validates the draft and issues the create or update. Validation
// failure never reaches the store and leaves the draft composing.
// Success clears the draft; any store failure restores Composing with
// the draft intact so the user can retry.
func (c *Controller) Submit() (*model.Review, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, apperrors.ErrSubmissionInFlight
	}
	if c.state != StateComposing || c.draft == nil {
		c.mu.Unlock()
		return nil, apperrors.New(apperrors.ErrCodeBusinessError, "nothing to submit")
	}
	draft := *c.draft

	if err := validator.ValidateReviewDraft(draft.Rating, draft.Text); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	user := c.provider.Current()
	if user == nil {
		c.mu.Unlock()
		return nil, apperrors.ErrAuthenticationRequired
	}

	c.state = StateSubmitting
	c.mu.Unlock()

	review, err := c.dispatch(&draft, user)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// Back to composing, draft preserved for retry.
		c.state = StateComposing
		return nil, err
	}

	c.state = StateIdle
	c.draft = nil
	if c.onMutate != nil {
		c.onMutate(review.BookID)
	}
	return review, nil
}

func (c *Controller) dispatch(draft *Draft, user *model.User) (*model.Review, error) {
	if draft.ReviewID != nil {
		existing, err := c.store.GetReview(&model.FindReview{ID: draft.ReviewID})
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "store is unavailable, try again")
		}
		if existing == nil {
			return nil, apperrors.ErrReviewNotFound
		}
		if existing.AuthorID != user.ID {
			return nil, apperrors.ErrAuthorizationDenied
		}
		review, err := c.store.UpdateReview(&model.UpdateReview{
			ID:     *draft.ReviewID,
			Rating: draft.Rating,
			Text:   draft.Text,
		})
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "store is unavailable, try again")
		}
		return review, nil
	}

	review, err := c.store.CreateReview(&model.Review{
		BookID:   draft.BookID,
		AuthorID: user.ID,
		Rating:   draft.Rating,
		Text:     draft.Text,
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeDuplicateEntry) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "store is unavailable, try again")
	}
	return review, nil
}

// Cancel discards the draft from any state except mid-submission.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		// The in-flight call owns the state; its completion resolves it.
		return
	}
	c.state = StateIdle
	c.draft = nil
}

// Delete removes a review after the redundant client-side ownership
// check; the store enforces ownership as well. Gated by the same
// single-flight rule as Submit.
func (c *Controller) Delete(reviewID int) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return apperrors.ErrSubmissionInFlight
	}

	user := c.provider.Current()
	if user == nil {
		c.mu.Unlock()
		return apperrors.ErrAuthenticationRequired
	}

	existing, err := c.store.GetReview(&model.FindReview{ID: &reviewID})
	if err != nil {
		c.mu.Unlock()
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "store is unavailable, try again")
	}
	if existing == nil {
		c.mu.Unlock()
		return apperrors.ErrReviewNotFound
	}
	if existing.AuthorID != user.ID {
		c.mu.Unlock()
		log.Warn("Refused to delete a foreign review",
			zap.Int("review_id", reviewID),
			zap.Int32("author_id", existing.AuthorID),
			zap.Int32("user_id", user.ID))
		return apperrors.ErrAuthorizationDenied
	}

	prev := c.state
	c.state = StateSubmitting
	c.mu.Unlock()

	err = c.store.RemoveReview(reviewID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = prev
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "store is unavailable, try again")
	}

	// A draft bound to the deleted review is dead; an unrelated draft
	// survives the delete.
	if c.draft != nil && c.draft.ReviewID != nil && *c.draft.ReviewID == reviewID {
		c.state = StateIdle
		c.draft = nil
	} else {
		c.state = prev
	}
	if c.onMutate != nil {
		c.onMutate(existing.BookID)
	}
	return nil
}

func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return
	}
	c.state = StateIdle
	c.draft = nil
}

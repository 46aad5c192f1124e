package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookgrove/bookgrove/http/request"
	"github.com/bookgrove/bookgrove/http/response"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/review"
	"go.uber.org/zap"
)

type draftStartRequest struct {
	// ReviewID selects edit mode: the draft is pre-populated from the
	// existing review.
	ReviewID *int `json:"review_id"`
}

type draftUpdateRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type editorResponse struct {
	State review.State  `json:"state"`
	Draft *review.Draft `json:"draft"`
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	reviews, err := h.store.ListReviews(&model.FindReview{BookID: &bookID})
	if err != nil {
		log.Error("Failed to list reviews", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, reviews)
}

// startDraft opens the review editor for a book. With a review_id in the
// body the draft is bound to that review for editing.
func (h *Handler) startDraft(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	bookID := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	start := &draftStartRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(start); err != nil {
			log.Error("Failed to decode request body", zap.Error(err))
			response.BadRequest(w, r, err)
			return
		}
	}

	var existing *model.Review
	if start.ReviewID != nil {
		existing, err = h.store.GetReview(&model.FindReview{ID: start.ReviewID})
		if err != nil {
			log.Error("Failed to get review", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		if existing == nil || existing.BookID != bookID {
			response.NotFound(w, r)
			return
		}
	}

	e := h.editorFor(user)
	if err := e.controller.StartCompose(bookID, existing); err != nil {
		response.AppError(w, r, err)
		return
	}

	response.OK(w, r, &editorResponse{State: e.controller.State(), Draft: e.controller.Draft()})
}

func (h *Handler) getDraft(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	e := h.editorFor(user)
	response.OK(w, r, &editorResponse{State: e.controller.State(), Draft: e.controller.Draft()})
}

func (h *Handler) updateDraft(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	update := &draftUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(update); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	e := h.editorFor(user)
	if err := e.controller.SetDraft(update.Rating, update.Text); err != nil {
		response.AppError(w, r, err)
		return
	}

	response.OK(w, r, &editorResponse{State: e.controller.State(), Draft: e.controller.Draft()})
}

func (h *Handler) cancelDraft(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	e := h.editorFor(user)
	e.controller.Cancel()
	response.NoContent(w, r)
}

func (h *Handler) submitDraft(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	e := h.editorFor(user)
	submitted, err := e.controller.Submit()
	if err != nil {
		response.AppError(w, r, err)
		return
	}

	response.OK(w, r, submitted)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	reviewID := request.RouteIntParam(r, "id")
	e := h.editorFor(user)
	if err := e.controller.Delete(reviewID); err != nil {
		response.AppError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

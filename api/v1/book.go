package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookgrove/bookgrove/catalog"
	apperrors "github.com/bookgrove/bookgrove/errors"
	"github.com/bookgrove/bookgrove/http/request"
	"github.com/bookgrove/bookgrove/http/response"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/util"
	"github.com/bookgrove/bookgrove/validator"
	"go.uber.org/zap"
)

// listBooks serves one page of the aggregated catalog. The query string
// is the whole view state: search, genre, sort, page.
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	view := catalog.NewViewState().
		WithSearch(request.QueryStringParam(r, "search", "")).
		WithGenre(request.QueryStringParam(r, "genre", catalog.GenreAll)).
		WithSort(catalog.ParseSortKey(request.QueryStringParam(r, "sort", ""))).
		WithPage(request.QueryIntParam(r, "page", 1))

	response.OK(w, r, h.catalog.GetPage(view))
}

func (h *Handler) listGenres(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, h.catalog.GenreOptions())
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &id})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	create := &model.BookCreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(create); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateBookCreateRequest(create); err != nil {
		response.AppError(w, r, err)
		return
	}

	ownerID := user.ID
	book, err := h.store.CreateBook(&model.Book{
		UUID:          util.GenUUID(),
		Title:         create.Title,
		Author:        create.Author,
		Description:   create.Description,
		Genre:         create.Genre,
		PublishedYear: create.PublishedYear,
		OwnerID:       &ownerID,
	})
	if err != nil {
		log.Error("Failed to create book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	h.pushRefresh(book.ID)
	response.Created(w, r, book)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	id := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &id})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	if !book.IsOwnedBy(user.ID) {
		log.Warn("Refused to update a book not owned by the user",
			zap.Int("book_id", book.ID),
			zap.Int32("user_id", user.ID))
		response.AppError(w, r, apperrors.ErrAuthorizationDenied)
		return
	}

	patch := &model.BookUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(patch); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateBookUpdateRequest(patch); err != nil {
		response.AppError(w, r, err)
		return
	}

	updated, err := h.store.UpdateBook(&model.UpdateBook{
		ID:            id,
		Title:         patch.Title,
		Author:        patch.Author,
		Description:   patch.Description,
		Genre:         patch.Genre,
		PublishedYear: patch.PublishedYear,
	})
	if err != nil {
		log.Error("Failed to update book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	h.pushRefresh(updated.ID)
	response.OK(w, r, updated)
}

// deleteBook removes a book and, by cascade, its reviews, then queues a
// catalog rebuild.
func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	user, err := getCurrentUser(r, h.store)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}

	id := request.RouteIntParam(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &id})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	if !book.IsOwnedBy(user.ID) {
		log.Warn("Refused to delete a book not owned by the user",
			zap.Int("book_id", book.ID),
			zap.Int32("user_id", user.ID))
		response.AppError(w, r, apperrors.ErrAuthorizationDenied)
		return
	}

	if err := h.store.RemoveBook(id); err != nil {
		log.Error("Failed to delete book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	h.pushRefresh(id)
	response.NoContent(w, r)
}

package v1

import (
	"net/http"
	"sync"

	"github.com/bookgrove/bookgrove/catalog"
	"github.com/bookgrove/bookgrove/config"
	"github.com/bookgrove/bookgrove/identity"
	"github.com/bookgrove/bookgrove/middleware"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/review"
	"github.com/bookgrove/bookgrove/store"
	"github.com/bookgrove/bookgrove/worker"
	"github.com/gorilla/mux"
)

type Handler struct {
	store   *store.Store
	catalog *catalog.Catalog
	pool    worker.WorkPool
	router  *mux.Router

	// One review editor per signed-in user, keyed by user ID.
	editors sync.Map
}

// editor binds a user's review controller to the session identity that
// feeds it.
type editor struct {
	session    *identity.Session
	controller *review.Controller
}

func NewHandler(store *store.Store, catalog *catalog.Catalog, pool worker.WorkPool) *Handler {
	return &Handler{
		store:   store,
		catalog: catalog,
		pool:    pool,
	}
}

func Server(router *mux.Router, handler *Handler) {
	handler.router = router

	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Use(NewAuthInterceptor(handler.store, config.Opts.JWTSecret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/signup", handler.signUp).Methods(http.MethodPost)
	sr.HandleFunc("/signin", handler.signIn).Methods(http.MethodPost)
	sr.HandleFunc("/signout", handler.signOut).Methods(http.MethodPost)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.createBook).Methods(http.MethodPost)
	sr.HandleFunc("/genres", handler.listGenres).Methods(http.MethodGet)
	sr.HandleFunc("/book/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/book/{id}", handler.updateBook).Methods(http.MethodPatch)
	sr.HandleFunc("/book/{id}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/book/{id}/reviews", handler.listReviews).Methods(http.MethodGet)

	sr.HandleFunc("/book/{id}/draft", handler.startDraft).Methods(http.MethodPost)
	sr.HandleFunc("/draft", handler.getDraft).Methods(http.MethodGet)
	sr.HandleFunc("/draft", handler.updateDraft).Methods(http.MethodPut)
	sr.HandleFunc("/draft", handler.cancelDraft).Methods(http.MethodDelete)
	sr.HandleFunc("/draft/submit", handler.submitDraft).Methods(http.MethodPost)
	sr.HandleFunc("/review/{id}", handler.deleteReview).Methods(http.MethodDelete)
}

// editorFor returns the review editor bound to the given user, creating
// it on first use. The session mirrors the request identity so identity
// changes propagate to the controller.
func (h *Handler) editorFor(user *model.User) *editor {
	if v, ok := h.editors.Load(user.ID); ok {
		e := v.(*editor)
		e.session.Set(user)
		return e
	}

	session := identity.NewSession()
	e := &editor{
		session:    session,
		controller: review.NewController(h.store, session, h.pushRefresh),
	}
	if v, loaded := h.editors.LoadOrStore(user.ID, e); loaded {
		e = v.(*editor)
	}
	e.session.Set(user)
	return e
}

// pushRefresh queues a catalog rebuild after a successful mutation.
func (h *Handler) pushRefresh(bookID int) {
	h.pool.Push(model.Job{
		BookID: bookID,
		Type:   model.JobTypeRefresh,
		Status: model.JobStatusPending,
	})
}

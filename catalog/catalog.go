package catalog

import (
	"sync"

	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"go.uber.org/zap"
)

// Store is the slice of the data store the catalog reads from.
type Store interface {
	ListBooks(find *model.FindBook) ([]*model.Book, error)
	ListReviews(find *model.FindReview) ([]*model.Review, error)
}

// Catalog holds the aggregated snapshot the pipeline serves pages from.
// Every mutation triggers a full refetch-and-reaggregate instead of
// incremental patching; review counts are small enough that the simpler
// model wins.
type Catalog struct {
	store Store

	mu        sync.RWMutex
	summaries []*BookSummary
}

func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// Refresh refetches all books and reviews and rebuilds the snapshot.
func (c *Catalog) Refresh() error {
	books, err := c.store.ListBooks(&model.FindBook{})
	if err != nil {
		log.Error("Failed to list books for catalog refresh", zap.Error(err))
		return err
	}
	reviews, err := c.store.ListReviews(&model.FindReview{})
	if err != nil {
		log.Error("Failed to list reviews for catalog refresh", zap.Error(err))
		return err
	}

	summaries := Aggregate(books, reviews)

	c.mu.Lock()
	c.summaries = summaries
	c.mu.Unlock()

	log.Debug("Catalog refreshed",
		zap.Int("books", len(books)),
		zap.Int("reviews", len(reviews)))
	return nil
}

// GetPage serves one page of the current snapshot.
func (c *Catalog) GetPage(view ViewState) *Page {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return GetPage(c.summaries, view)
}

// GenreOptions lists the genres of the unfiltered snapshot.
func (c *Catalog) GenreOptions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return GenreOptions(c.summaries)
}

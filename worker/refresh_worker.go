package worker

import (
	"github.com/bookgrove/bookgrove/catalog"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"go.uber.org/zap"
)

type RefreshWorker struct {
	id      int
	catalog *catalog.Catalog
}

// Run rebuilds the catalog snapshot for every queued job.
func (w *RefreshWorker) Run(c <-chan model.Job) {
	log.Debug("RefreshWorker is running", zap.Int("worker_id", w.id))

	for {
		job := <-c

		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int("book_id", job.BookID),
			zap.String("type", job.Type))

		if job.Type != model.JobTypeRefresh {
			log.Warn("Unknown job type", zap.String("type", job.Type))
			continue
		}

		if err := w.catalog.Refresh(); err != nil {
			log.Error("Catalog refresh failed",
				zap.Int("worker_id", w.id),
				zap.Int("book_id", job.BookID),
				zap.Error(err))
			continue
		}

		log.Debug("Catalog refresh done",
			zap.Int("worker_id", w.id),
			zap.Int("book_id", job.BookID))
	}
}

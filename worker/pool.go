package worker // import "github.com/bookgrove/bookgrove/worker"

import (
	"github.com/bookgrove/bookgrove/catalog"
	"github.com/bookgrove/bookgrove/model"
)

type RefreshPool struct {
	queue chan model.Job
}

// NewRefreshPool creates a pool of catalog refresh workers. A size of 1
// serializes refreshes so concurrent mutations collapse into an ordered
// stream of rebuilds.
func NewRefreshPool(catalog *catalog.Catalog, size int) *RefreshPool {
	pool := &RefreshPool{
		queue: make(chan model.Job),
	}

	for i := 0; i < size; i++ {
		worker := &RefreshWorker{id: i, catalog: catalog}
		go worker.Run(pool.queue)
	}
	return pool
}

// Implement WorkPool interface
func (p *RefreshPool) Push(job model.Job) {
	p.queue <- job
}

func (p *RefreshPool) GetQueue() chan model.Job {
	return p.queue
}

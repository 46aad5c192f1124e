package worker

import (
	"github.com/bookgrove/bookgrove/model"
)

type Worker interface {
	Run(c <-chan model.Job)
}

// WorkPool is a pool of background workers.
type WorkPool interface {
	Push(job model.Job)
}

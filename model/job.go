package model //import "github.com/bookgrove/bookgrove/model"

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
)

const (
	// JobTypeRefresh asks the catalog to refetch and reaggregate.
	JobTypeRefresh = "REFRESH"
)

// Job is an in-memory background task for the worker pool. BookID records
// which book triggered the refresh; the refresh itself is always a full
// refetch.
type Job struct {
	BookID int
	Type   string
	Status string
}

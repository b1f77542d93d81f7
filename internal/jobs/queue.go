// Package jobs is the enqueue side of background work.
package jobs

// JobQueue accepts background jobs by id.
type JobQueue interface {
	EnqueueReport(reportID int64) error
}

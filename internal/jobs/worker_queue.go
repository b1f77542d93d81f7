package jobs

import (
	"github.com/vytor/chessinsight/internal/worker"
)

// WorkerQueue implements JobQueue on a worker pool.
type WorkerQueue struct {
	pool   *worker.Pool
	runner worker.ReportRunner
}

// NewWorkerQueue creates a queue submitting report jobs to pool. The runner
// is usually set later with SetRunner because the service that runs reports
// also enqueues them.
func NewWorkerQueue(pool *worker.Pool, runner worker.ReportRunner) *WorkerQueue {
	return &WorkerQueue{pool: pool, runner: runner}
}

// SetRunner sets the runner used for jobs enqueued afterwards.
func (q *WorkerQueue) SetRunner(r worker.ReportRunner) { q.runner = r }

func (q *WorkerQueue) EnqueueReport(reportID int64) error {
	return q.pool.Submit(&worker.AnalyzeReportJob{Runner: q.runner, ReportID: reportID})
}

package jobs

import (
	"context"

	"github.com/vytor/chessinsight/internal/worker"
)

// InlineQueue runs each report on the caller's goroutine as it is queued.
// The CLI uses it to store reports without a worker pool.
type InlineQueue struct {
	Ctx    context.Context
	Runner worker.ReportRunner
}

func (q *InlineQueue) EnqueueReport(reportID int64) error {
	ctx := q.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return q.Runner.RunReport(ctx, reportID)
}

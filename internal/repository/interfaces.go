package repository

import (
	"context"
	"errors"

	"github.com/vytor/chessinsight/internal/models"
)

// ErrNotFound is returned when a report id has no row.
var ErrNotFound = errors.New("repository: not found")

// ErrStateChange is returned when a transition does not apply to the
// report's current status.
var ErrStateChange = errors.New("repository: invalid status transition")

// ReportRepository stores analysis reports and their job state.
type ReportRepository interface {
	Insert(ctx context.Context, r models.StoredReport) (int64, error)
	Get(ctx context.Context, id int64) (*models.StoredReport, error)
	List(ctx context.Context, filter models.ReportFilter) ([]models.StoredReport, error)
	Count(ctx context.Context, filter models.ReportFilter) (int, error)
	MarkRunning(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64, r *models.Report) error
	Fail(ctx context.Context, id int64, reason string) error
	ResetProcessingToPending(ctx context.Context) (int64, error)
	PendingIDs(ctx context.Context) ([]int64, error)
	Mistakes(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeRow, error)
}

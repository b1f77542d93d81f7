package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/repository"
)

var _ repository.ReportRepository = (*MockReportRepository)(nil)

// MockReportRepository is a mock implementation of repository.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Insert(ctx context.Context, r models.StoredReport) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) Get(ctx context.Context, id int64) (*models.StoredReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredReport), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, filter models.ReportFilter) ([]models.StoredReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StoredReport), args.Error(1)
}

func (m *MockReportRepository) Count(ctx context.Context, filter models.ReportFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepository) MarkRunning(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReportRepository) Complete(ctx context.Context, id int64, r *models.Report) error {
	return m.Called(ctx, id, r).Error(0)
}

func (m *MockReportRepository) Fail(ctx context.Context, id int64, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *MockReportRepository) ResetProcessingToPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) PendingIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockReportRepository) Mistakes(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MistakeRow), args.Error(1)
}

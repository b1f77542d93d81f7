package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessinsight/internal/jobs"
)

var _ jobs.JobQueue = (*MockJobQueue)(nil)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueReport(reportID int64) error {
	return m.Called(reportID).Error(0)
}

package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsJobs(t *testing.T) {
	p := worker.NewPool(3, 10, nil)
	p.Start(context.Background())

	var n atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(funcJob{name: "count", fn: func(context.Context) error {
			defer wg.Done()
			n.Add(1)
			return nil
		}}))
	}
	wg.Wait()
	p.Stop()
	assert.Equal(t, int32(10), n.Load())
}

func TestPool_FailingAndPanickingJobsKeepWorkerAlive(t *testing.T) {
	p := worker.NewPool(1, 4, nil)
	p.Start(context.Background())
	defer p.Stop()

	done := make(chan struct{})
	require.NoError(t, p.Submit(funcJob{name: "fail", fn: func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, p.Submit(funcJob{name: "panic", fn: func(context.Context) error { panic("bad") }}))
	require.NoError(t, p.Submit(funcJob{name: "ok", fn: func(context.Context) error { close(done); return nil }}))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive failing jobs")
	}
}

func TestPool_QueueFull(t *testing.T) {
	p := worker.NewPool(1, 1, nil)

	block := funcJob{name: "noop", fn: func(context.Context) error { return nil }}
	require.NoError(t, p.Submit(block))
	assert.ErrorIs(t, p.Submit(block), worker.ErrQueueFull)
	assert.Equal(t, 1, p.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := worker.NewPool(1, 1, nil)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrStopped)
}

type runner struct{ got int64 }

func (r *runner) RunReport(_ context.Context, id int64) error {
	r.got = id
	return nil
}

func TestAnalyzeReportJob(t *testing.T) {
	r := &runner{}
	job := &worker.AnalyzeReportJob{Runner: r, ReportID: 7}
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, int64(7), r.got)
	assert.Equal(t, "analyze_report", job.Name())
}

package jobs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/jobs"
	"github.com/vytor/chessinsight/internal/worker"
)

type recordingRunner struct {
	mu   sync.Mutex
	ids  []int64
	done chan struct{}
}

func (r *recordingRunner) RunReport(_ context.Context, id int64) error {
	r.mu.Lock()
	r.ids = append(r.ids, id)
	r.mu.Unlock()
	if r.done != nil {
		r.done <- struct{}{}
	}
	return nil
}

func TestInlineQueue(t *testing.T) {
	r := &recordingRunner{}
	var q jobs.JobQueue = &jobs.InlineQueue{Runner: r}

	require.NoError(t, q.EnqueueReport(4))
	require.NoError(t, q.EnqueueReport(9))
	assert.Equal(t, []int64{4, 9}, r.ids)
}

func TestWorkerQueue_RunsThroughPool(t *testing.T) {
	pool := worker.NewPool(1, 4, nil)
	pool.Start(context.Background())
	defer pool.Stop()

	r := &recordingRunner{done: make(chan struct{}, 1)}
	q := jobs.NewWorkerQueue(pool, nil)
	q.SetRunner(r)

	require.NoError(t, q.EnqueueReport(7))
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("report was not run")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Equal(t, []int64{7}, r.ids)
}

func TestWorkerQueue_StoppedPool(t *testing.T) {
	pool := worker.NewPool(1, 1, nil)
	pool.Start(context.Background())
	pool.Stop()

	q := jobs.NewWorkerQueue(pool, &recordingRunner{})
	assert.ErrorIs(t, q.EnqueueReport(1), worker.ErrStopped)
}

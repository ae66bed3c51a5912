package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryLock struct {
	mu     sync.Mutex
	held   bool
	busy   bool
	denied int
}

func (l *memoryLock) Acquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy || l.held {
		l.denied++
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *memoryLock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	return nil
}

type countingJob struct {
	name string
	runs atomic.Int64
	err  error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestRunCycleExecutesJobsInOrder(t *testing.T) {
	first := &countingJob{name: "first"}
	second := &countingJob{name: "second", err: errors.New("boom")}
	third := &countingJob{name: "third"}
	lock := &memoryLock{}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(first, second, third),
		Lock:     lock,
	})
	require.NoError(t, err)

	require.NoError(t, svc.runCycle(context.Background()))

	// a failed job never blocks the rest of the cycle
	assert.Equal(t, int64(1), first.runs.Load())
	assert.Equal(t, int64(1), second.runs.Load())
	assert.Equal(t, int64(1), third.runs.Load())
	assert.False(t, lock.held)
}

func TestRunCycleSkipsWhenLockBusy(t *testing.T) {
	job := &countingJob{name: "noop"}
	lock := &memoryLock{busy: true}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	require.NoError(t, err)

	require.NoError(t, svc.runCycle(context.Background()))
	assert.Zero(t, job.runs.Load())
	assert.Equal(t, 1, lock.denied)
}

func TestRunFiresImmediatelyAndStopsOnCancel(t *testing.T) {
	job := &countingJob{name: "noop"}
	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     &memoryLock{},
		Interval: time.Hour,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool { return job.runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestRegistryIgnoresNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &countingJob{name: "only"})
	registry.Register(nil)

	jobs := registry.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "only", jobs[0].Name())
}

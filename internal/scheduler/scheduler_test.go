package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

type fakeRunner struct {
	runs int64
	err  error
}

func (f *fakeRunner) RunOnce(ctx context.Context) (*models.RunResult, error) {
	atomic.AddInt64(&f.runs, 1)
	return &models.RunResult{Timestamp: time.Now().UTC()}, f.err
}

func (f *fakeRunner) count() int64 {
	return atomic.LoadInt64(&f.runs)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestStartRunsImmediately(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, time.Hour, time.Hour)

	if !s.Start(context.Background()) {
		t.Fatal("Start returned false")
	}
	defer s.Stop()

	waitFor(t, time.Second, func() bool { return runner.count() == 1 })

	if s.LastRun() == nil {
		t.Error("expected LastRun to be recorded after first run")
	}
	if s.LastError() != "" {
		t.Errorf("expected empty LastError, got %q", s.LastError())
	}
}

func TestStartWhileRunningReturnsFalse(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, time.Hour, time.Hour)

	if !s.Start(context.Background()) {
		t.Fatal("first Start returned false")
	}
	defer s.Stop()

	if s.Start(context.Background()) {
		t.Error("second Start should return false while running")
	}
}

func TestStopWhileIdleReturnsFalse(t *testing.T) {
	s := NewScheduler(&fakeRunner{}, time.Hour, time.Hour)
	if s.Stop() {
		t.Error("Stop should return false when not running")
	}
}

func TestErrorBackoffShortensInterval(t *testing.T) {
	runner := &fakeRunner{err: errors.New("odds provider down")}
	s := NewScheduler(runner, time.Hour, 20*time.Millisecond)

	s.Start(context.Background())
	defer s.Stop()

	// With an hour-long interval, a second run within the test window can
	// only come from the error backoff.
	waitFor(t, time.Second, func() bool { return runner.count() >= 2 })

	if s.LastError() == "" {
		t.Error("expected LastError to be recorded for failing runs")
	}
}

func TestStopHaltsLoop(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, 10*time.Millisecond, 10*time.Millisecond)

	s.Start(context.Background())
	waitFor(t, time.Second, func() bool { return runner.count() >= 2 })

	if !s.Stop() {
		t.Fatal("Stop returned false while running")
	}
	if s.Running() {
		t.Error("Running should report false after Stop")
	}

	count := runner.count()
	time.Sleep(50 * time.Millisecond)
	if runner.count() != count {
		t.Error("runs continued after Stop")
	}
}

func TestRestartAfterStop(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, time.Hour, time.Hour)

	s.Start(context.Background())
	waitFor(t, time.Second, func() bool { return runner.count() == 1 })
	s.Stop()

	if !s.Start(context.Background()) {
		t.Fatal("Start after Stop returned false")
	}
	defer s.Stop()

	waitFor(t, time.Second, func() bool { return runner.count() == 2 })
}

func TestContextCancelHaltsLoop(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, 10*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	waitFor(t, time.Second, func() bool { return runner.count() >= 1 })

	cancel()
	time.Sleep(50 * time.Millisecond)

	count := runner.count()
	time.Sleep(50 * time.Millisecond)
	if runner.count() != count {
		t.Error("runs continued after context cancellation")
	}

	if s.Running() {
		t.Error("Running should report false after context cancellation")
	}

	// A dead loop must be restartable
	if !s.Start(context.Background()) {
		t.Fatal("Start after context cancellation returned false")
	}
	defer s.Stop()
	waitFor(t, time.Second, func() bool { return runner.count() > count })
}

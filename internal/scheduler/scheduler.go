// Package scheduler runs the pipeline on a fixed interval. The first run
// fires immediately on start; a failed run shortens the wait to the error
// backoff before the regular cadence resumes.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

// Runner executes one pipeline run
type Runner interface {
	RunOnce(ctx context.Context) (*models.RunResult, error)
}

// Scheduler drives a Runner on a fixed interval
type Scheduler struct {
	runner       Runner
	interval     time.Duration
	errorBackoff time.Duration

	mu        sync.Mutex
	running   bool
	stopChan  chan struct{}
	wg        sync.WaitGroup
	lastRun   *models.RunResult
	lastError string
}

// NewScheduler creates a scheduler with the given cadence
func NewScheduler(runner Runner, interval, errorBackoff time.Duration) *Scheduler {
	return &Scheduler{
		runner:       runner,
		interval:     interval,
		errorBackoff: errorBackoff,
	}
}

// Start launches the run loop. Returns false if already running.
func (s *Scheduler) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}

	s.running = true
	s.stopChan = make(chan struct{})

	s.wg.Add(1)
	go s.loop(ctx, s.stopChan)

	return true
}

// Stop shuts the run loop down and waits for an in-flight run to finish.
// Returns false if not running.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	s.running = false
	stopChan := s.stopChan
	s.mu.Unlock()

	close(stopChan)
	s.wg.Wait()

	return true
}

// Running reports whether the automation loop is active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastRun returns the most recent run result, or nil before the first run
func (s *Scheduler) LastRun() *models.RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// LastError returns the most recent run error message, empty when the last
// run succeeded
func (s *Scheduler) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Scheduler) loop(ctx context.Context, stopChan chan struct{}) {
	defer s.wg.Done()

	// First run immediately
	wait := s.runAndRecord(ctx)

	for {
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			wait = s.runAndRecord(ctx)
		case <-stopChan:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		}
	}
}

// runAndRecord executes one run and returns how long to wait before the next
func (s *Scheduler) runAndRecord(ctx context.Context) time.Duration {
	start := time.Now()
	result, err := s.runner.RunOnce(ctx)
	elapsed := time.Since(start)

	s.mu.Lock()
	s.lastRun = result
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("[Scheduler] run failed after %v: %v (retrying in %v)", elapsed, err, s.errorBackoff)
		return s.errorBackoff
	}

	log.Printf("[Scheduler] run completed in %v, next in %v", elapsed, s.interval)
	return s.interval
}

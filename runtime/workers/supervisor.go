// Package workers supervises the long-running goroutines of the client: the
// channel read pump and the heartbeat. A panicking worker is recovered and
// restarted after a short delay; a worker returning nil is considered done
// and is left stopped.
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"swapmeet/contract"
	"swapmeet/errors"
)

const defaultRestartInterval = 200 * time.Millisecond

type Supervisor struct {
	Cancel context.CancelFunc

	wg      *sync.WaitGroup
	log     *slog.Logger
	restart time.Duration
	workers []contract.Worker
}

func NewSupervisor(log *slog.Logger, restartInterval time.Duration) *Supervisor {
	if restartInterval <= 0 {
		restartInterval = defaultRestartInterval
	}
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, restart: restartInterval}
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Run starts every added worker under a cancellation scope derived from ctx
// and blocks until all of them have stopped. Cancelling the parent stops the
// workers; calling Stop cancels only this supervisor's scope.
func (s *Supervisor) Run(ctx context.Context) {
	scoped, cancel := context.WithCancel(ctx)
	s.Cancel = cancel
	defer s.Cancel()

	for _, worker := range s.workers {
		s.Start(scoped, worker)
	}
	s.wg.Wait()
}

// Start supervises one worker in its own goroutine. A panic is recovered and
// counted as a crash; crashes restart the worker after the restart interval.
// A clean nil return stops supervision of that worker for good.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	name := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info("Stopping worker", "name", name)
				return
			}

			err := s.runOnce(ctx, worker)
			if err == nil {
				s.log.Info("Worker finished", "name", name)
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", name)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", name, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.restart):
			}
		}
	}()
}

// runOnce executes a single worker pass, turning a panic into an error so the
// supervision loop above survives it.
func (s *Supervisor) runOnce(ctx context.Context, worker contract.Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	return worker.Run(ctx)
}

// Stop cancels this supervisor's scope. Workers observe it through their
// context; Run returns once they have all exited.
func (s *Supervisor) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
}

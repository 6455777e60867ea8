package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeman-83/homework-bot/internal/app" // For StatusService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler drives the poll cycle on a fixed period. One cycle runs
// immediately at startup, then the cron engine fires every interval
// regardless of whether the previous cycle succeeded.
type PollScheduler struct {
	cronEngine    *cron.Cron
	statusService app.StatusService // Using the interface
	logger        *logrus.Logger
	interval      time.Duration
}

func NewPollScheduler(
	statusService app.StatusService,
	logger *logrus.Logger,
	interval time.Duration, // e.g., 10m (the API retry period)
) *PollScheduler {
	return &PollScheduler{
		// SkipIfStillRunning keeps cycles from overlapping if one ever
		// outlives the interval.
		cronEngine:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		statusService: statusService,
		logger:        logger,
		interval:      interval,
	}
}

func (s *PollScheduler) Start() {
	s.logger.Info("Starting poll scheduler...")

	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cronEngine.AddFunc(spec, s.runCycle)
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add poll cron job: %v", err)
	}

	// First poll fires right away; the cron engine only triggers after one
	// full interval.
	go s.runCycle()

	s.cronEngine.Start()
	s.logger.Infof("Poll scheduler started, polling every %s.", s.interval)
}

// runCycle executes one poll cycle and is the loop's outermost error
// boundary: any failure from polling, validation or formatting is logged and
// reported to the chat, and the schedule carries on.
func (s *PollScheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval) // Context for the job
	defer cancel()

	if err := s.statusService.ProcessStatusUpdate(ctx); err != nil {
		s.logger.Errorf("Error during status update cycle: %v", err)
		s.statusService.ReportFailure(err)
	}
}

func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Poll scheduler gracefully stopped.")
}

package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/services"
)

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	priority services.PrioritizationServiceProvider
	sessions services.SessionServiceProvider
	logs     services.ActivityLogServiceProvider
	done     chan bool
}

// NewScheduler creates a scheduler that recomputes the prioritization
// snapshot on prioritySpec and purges expired refresh tokens on cleanupSpec.
// Both specs use the standard five-field cron syntax.
func NewScheduler(priority services.PrioritizationServiceProvider, sessions services.SessionServiceProvider, logs services.ActivityLogServiceProvider, prioritySpec, cleanupSpec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{}), cron.Recover(cronLogger{}))),
		priority: priority,
		sessions: sessions,
		logs:     logs,
		done:     make(chan bool),
	}
	if _, err := s.cron.AddFunc(prioritySpec, s.refreshPrioritization); err != nil {
		return nil, fmt.Errorf("invalid prioritization schedule %q: %w", prioritySpec, err)
	}
	if _, err := s.cron.AddFunc(cleanupSpec, s.purgeTokens); err != nil {
		return nil, fmt.Errorf("invalid token cleanup schedule %q: %w", cleanupSpec, err)
	}
	return s, nil
}

// Run starts the cron loop and blocks until Stop is called.
func (s *Scheduler) Run() {
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("Starting background scheduler...")

	// Warm the snapshot once on start
	s.refreshPrioritization()

	s.cron.Start()
	<-s.done
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopping background scheduler.")
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.done <- true
}

func (s *Scheduler) refreshPrioritization() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	list, err := s.priority.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: Failed to refresh prioritization")
		s.recordFailure("schedule.prioritization.fail", fmt.Sprintf("Prioritization refresh failed: %v", err))
		return
	}
	log.Info().Int("regions", len(list)).Dur("took", time.Since(start)).Msg("Scheduler: Prioritization refreshed")
}

func (s *Scheduler) purgeTokens() {
	n, err := s.sessions.PurgeExpired()
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: Failed to purge refresh tokens")
		s.recordFailure("schedule.token_cleanup.fail", fmt.Sprintf("Refresh token cleanup failed: %v", err))
		return
	}
	log.Info().Int64("purged", n).Msg("Scheduler: Expired refresh tokens purged")
}

func (s *Scheduler) recordFailure(logType, msg string) {
	if s.logs == nil {
		return
	}
	if err := s.logs.Record(logType, services.LevelError, msg, nil); err != nil {
		log.Error().Err(err).Msg("Scheduler: Failed to record activity")
	}
}

// cronLogger routes cron's own logging to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

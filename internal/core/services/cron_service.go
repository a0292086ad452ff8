package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"campus-inventory/internal/config"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled reminder and archive jobs
type CronService struct {
	cron      *cron.Cron
	cfg       config.SchedulerConfig
	reminders *ReminderService
	archive   *ArchiveService
	metrics   *Metrics
}

// NewCronService creates the scheduler. Jobs never overlap with themselves:
// a tick that fires while the previous run is still going is skipped.
func NewCronService(cfg config.SchedulerConfig, reminders *ReminderService, archive *ArchiveService, metrics *Metrics, verbose bool) *CronService {
	logger := cron.PrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))
	if verbose {
		logger = cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))
	}

	c := cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	return &CronService{
		cron:      c,
		cfg:       cfg,
		reminders: reminders,
		archive:   archive,
		metrics:   metrics,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.ReminderCron, s.RunReminders); err != nil {
		return fmt.Errorf("invalid REMINDER_CRON %q: %w", s.cfg.ReminderCron, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.ArchiveCron, s.RunArchive); err != nil {
		return fmt.Errorf("invalid ARCHIVE_CRON %q: %w", s.cfg.ArchiveCron, err)
	}

	s.cron.Start()
	log.Printf("🕐 Cron started [reminders: %s | archive: %s | tz: %s]",
		s.cfg.ReminderCron, s.cfg.ArchiveCron, s.cfg.Location)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Cron stopped")
}

// RunReminders is the scheduled reminder job
func (s *CronService) RunReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()

	if _, err := s.reminders.Run(ctx); err != nil {
		s.metrics.JobRuns.WithLabelValues("reminders", "error").Inc()
		log.Printf("❌ Reminder job failed: %v", err)
		return
	}
	s.metrics.JobRuns.WithLabelValues("reminders", "ok").Inc()
}

// RunArchive is the scheduled archive job
func (s *CronService) RunArchive() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()

	if _, err := s.archive.PurgeReturned(ctx); err != nil {
		s.metrics.JobRuns.WithLabelValues("archive", "error").Inc()
		log.Printf("❌ Archive job failed: %v", err)
		return
	}
	s.metrics.JobRuns.WithLabelValues("archive", "ok").Inc()
}

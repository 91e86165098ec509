package scheduler

// Package scheduler provides scheduled job management for the advisor backend.
// It handles:
// - Periodic dataset reloads from the prediction file
// - A daily dataset status log line for operations

import (
	"log"
	"time"

	"stock_advisor_backend/services"

	"github.com/go-co-op/gocron"
)

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron           *gocron.Scheduler
	dataset        *services.DatasetService
	refreshMinutes int
}

// NewScheduler creates a new scheduler instance
func NewScheduler(dataset *services.DatasetService, refreshMinutes int) *Scheduler {
	return &Scheduler{
		cron:           gocron.NewScheduler(time.UTC),
		dataset:        dataset,
		refreshMinutes: refreshMinutes,
	}
}

// Start starts all scheduled jobs
func (s *Scheduler) Start() {
	log.Println("Starting scheduler...")

	// Reload the prediction dataset so new upstream runs get picked up
	s.cron.Every(s.refreshMinutes).Minutes().Do(func() {
		s.reloadDataset()
	})

	// Log dataset status daily at 06:00 for operational visibility
	s.cron.Every(1).Day().At("06:00").Do(func() {
		s.logDatasetStatus()
	})

	s.cron.StartAsync()
	log.Println("Scheduler started successfully")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler stopped")
}

// reloadDataset refreshes the in-memory dataset from disk
func (s *Scheduler) reloadDataset() {
	log.Println("Scheduled dataset reload...")

	if err := s.dataset.Reload(); err != nil {
		log.Printf("Error reloading dataset: %v", err)
		return
	}

	status := s.dataset.Status()
	log.Printf("Scheduled reload complete: %d records", status.RecordCount)
}

// logDatasetStatus writes a daily status line
func (s *Scheduler) logDatasetStatus() {
	status := s.dataset.Status()
	log.Printf("Dataset status: source=%s records=%d loaded_at=%s",
		status.Source, status.RecordCount, status.LoadedAt.Format(time.RFC3339))
}

// Package scheduler runs the periodic backup job.
package scheduler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/collectarr/collectarr/internal/models"
	"github.com/collectarr/collectarr/internal/store"
	"github.com/collectarr/collectarr/internal/transfer"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron      *cron.Cron
	records   store.RecordStore
	profiles  *store.Profiles
	schedule  string
	backupDir string
	logger    *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(records store.RecordStore, profiles *store.Profiles, schedule, backupDir string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		records:   records,
		profiles:  profiles,
		schedule:  schedule,
		backupDir: backupDir,
		logger:    logger,
	}
}

// Start registers and starts the backup job
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runBackup); err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}
	s.cron.Start()
	s.logger.WithField("schedule", s.schedule).Info("Backup scheduler started")
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Backup scheduler stopped")
}

// runBackup writes an export snapshot per profile and refreshes each
// profile's stored stats along the way
func (s *Scheduler) runBackup() {
	profiles, err := s.profiles.All()
	if err != nil {
		s.logger.WithError(err).Error("Backup run failed to list profiles")
		return
	}

	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		s.logger.WithError(err).Error("Failed to create backup directory")
		return
	}

	date := time.Now().Format("2006-01-02")
	for _, profile := range profiles {
		if profile.IsGuest {
			continue
		}
		if err := s.backupProfile(profile, date); err != nil {
			s.logger.WithError(err).WithField("profile_id", profile.ID).Error("Profile backup failed")
		}
	}
}

func (s *Scheduler) backupProfile(profile *models.Profile, date string) error {
	records, err := s.records.List(profile.ID)
	if err != nil {
		return err
	}
	if err := s.profiles.RecomputeStats(profile, records); err != nil {
		return err
	}

	env := transfer.Export(profile, records)
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	name := fmt.Sprintf("media-collection-%s-%s.json", safeFileName(profile.Name), date)
	path := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"profile": profile.Name,
		"items":   len(records),
		"path":    path,
	}).Info("Profile backup written")
	return nil
}

// safeFileName strips path separators so a profile name can never escape the
// backup directory
func safeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.':
			return '_'
		}
		return r
	}, name)
}

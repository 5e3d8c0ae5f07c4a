// Package reporting summarises recent uploads for the periodic digest.
package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/quickdrop/quickdrop/internal/config"
	"github.com/quickdrop/quickdrop/internal/models"
	"github.com/quickdrop/quickdrop/internal/notifications"
	"github.com/quickdrop/quickdrop/internal/storage"
	"github.com/sirupsen/logrus"
)

// Service builds upload digests from the storage directory
type Service struct {
	config              *config.Config
	storage             storage.StorageInterface
	notificationService notifications.NotificationInterface
	now                 func() time.Time
}

// NewService creates a new reporting service
func NewService(cfg *config.Config, storage storage.StorageInterface, notificationService notifications.NotificationInterface) *Service {
	return &Service{
		config:              cfg,
		storage:             storage,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// Window returns how far back a digest for the configured schedule looks
func (s *Service) Window() time.Duration {
	if s.config.ReportSchedule == "weekly" {
		return 7 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// BuildDigest collects the files modified within window, newest first
func (s *Service) BuildDigest(window time.Duration) (*models.Digest, error) {
	files, err := s.storage.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	now := s.now().UTC()
	cutoff := now.Add(-window)

	digest := &models.Digest{
		GeneratedAt: now,
		Period:      s.config.ReportSchedule,
		Files:       []models.StoredFile{},
	}

	for _, f := range files {
		if f.ModTime.Before(cutoff) {
			continue
		}
		digest.Files = append(digest.Files, f)
		digest.TotalBytes += f.Size
	}
	digest.TotalFiles = len(digest.Files)

	sort.Slice(digest.Files, func(i, j int) bool {
		return digest.Files[i].ModTime.After(digest.Files[j].ModTime)
	})

	return digest, nil
}

// RunDigest builds the digest for the configured period and sends it
func (s *Service) RunDigest() error {
	start := time.Now()
	logrus.Infof("Building %s upload digest", s.config.ReportSchedule)

	digest, err := s.BuildDigest(s.Window())
	if err != nil {
		return err
	}

	if err := s.notificationService.SendDigest(digest); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"files":    digest.TotalFiles,
		"bytes":    digest.TotalBytes,
		"duration": time.Since(start).String(),
	}).Info("Upload digest sent")

	return nil
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Dan9191/credit-report-service/internal/config"
	"github.com/Dan9191/credit-report-service/internal/extractor"
	"github.com/Dan9191/credit-report-service/internal/models"
	"github.com/Dan9191/credit-report-service/internal/repository"
	"github.com/Dan9191/credit-report-service/internal/xmltree"
	"github.com/sirupsen/logrus"
)

// ErrTooLarge is returned when an upload exceeds the configured size limit
var ErrTooLarge = errors.New("upload exceeds size limit")

// Archive keeps a copy of every raw upload
type Archive interface {
	Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error)
}

// Notifier is told about every stored report
type Notifier interface {
	ReportUploaded(report models.StoredReport, fileName string) error
}

// Service handles business logic
type Service struct {
	repo     repository.Store
	archive  Archive
	notifier Notifier
	log      *logrus.Logger
	maxBytes int64
	now      func() time.Time
}

// NewService initializes a new service. archive and notifier may be nil.
func NewService(repo repository.Store, archive Archive, notifier Notifier, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		archive:  archive,
		notifier: notifier,
		log:      log,
		maxBytes: cfg.MaxUploadBytes,
		now:      time.Now,
	}
}

// Upload archives the raw file, extracts a report from it and stores the report.
// Malformed XML yields *xmltree.ParseError and storage failures yield
// *repository.StoreError.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (*models.StoredReport, error) {
	raw, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(raw)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	if s.archive != nil {
		path, size, err := s.archive.Save(ctx, fileName, bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to archive upload: %w", err)
		}
		s.log.Debugf("Upload %s archived as %s (%d bytes)", fileName, path, size)
	}

	doc, err := xmltree.Parse(raw)
	if err != nil {
		s.log.Warnf("Rejected upload %s: %v", fileName, err)
		return nil, err
	}

	report := extractor.Extract(doc)
	id, err := s.repo.Save(ctx, report)
	if err != nil {
		s.log.Errorf("Failed to store report from %s: %v", fileName, err)
		return nil, err
	}

	stored := &models.StoredReport{ID: id, CreatedAt: s.now().UTC(), Report: report}
	s.log.Infof("Report %s stored from %s: %d accounts", id, fileName, len(report.CreditAccountsInformation))

	if s.notifier != nil {
		if err := s.notifier.ReportUploaded(*stored, fileName); err != nil {
			s.log.Warnf("Upload notification for report %s failed: %v", id, err)
		}
	}
	return stored, nil
}

// List returns every stored report in insertion order
func (s *Service) List(ctx context.Context) ([]models.StoredReport, error) {
	reports, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Errorf("Failed to list reports: %v", err)
		return nil, err
	}
	if reports == nil {
		reports = []models.StoredReport{}
	}
	return reports, nil
}

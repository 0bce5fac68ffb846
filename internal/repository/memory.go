package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Dan9191/credit-report-service/internal/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps reports in process memory. Contents are lost on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	reports []models.StoredReport
	now     func() time.Time
}

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

// Save appends a copy of report and returns its id.
func (r *MemoryRepository) Save(ctx context.Context, report models.Report) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", storeError("create report", err)
	}
	stored := models.StoredReport{
		ID:        uuid.NewString(),
		CreatedAt: r.now().UTC(),
		Report:    report.Clone(),
	}

	r.mu.Lock()
	r.reports = append(r.reports, stored)
	r.mu.Unlock()
	return stored.ID, nil
}

// FindAll returns copies of all reports in insertion order.
func (r *MemoryRepository) FindAll(ctx context.Context) ([]models.StoredReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeError("find reports", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.StoredReport, len(r.reports))
	for i, rep := range r.reports {
		out[i] = rep
		out[i].Report = rep.Report.Clone()
	}
	return out, nil
}

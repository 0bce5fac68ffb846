package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/credit-report-service/internal/models"
)

// Store persists extracted reports and lists them in insertion order
type Store interface {
	Save(ctx context.Context, report models.Report) (string, error)
	FindAll(ctx context.Context) ([]models.StoredReport, error)
}

// StoreError reports a failed persistence or retrieval operation
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

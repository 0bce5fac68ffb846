package service

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/Dan9191/credit-report-service/internal/config"
	"github.com/Dan9191/credit-report-service/internal/models"
	"github.com/Dan9191/credit-report-service/internal/repository"
	"github.com/Dan9191/credit-report-service/internal/storage"
	"github.com/Dan9191/credit-report-service/internal/xmltree"
	"github.com/sirupsen/logrus"
)

const minimalReport = `<INProfileResponse>
  <SCORE><BureauScore>750</BureauScore></SCORE>
  <CAIS_Account>
    <CAIS_Summary><Credit_Account><CreditAccountTotal>5</CreditAccountTotal></Credit_Account></CAIS_Summary>
    <CAIS_Account_DETAILS><Current_Balance>1000</Current_Balance></CAIS_Account_DETAILS>
  </CAIS_Account>
</INProfileResponse>`

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type failingStore struct{}

func (failingStore) Save(ctx context.Context, report models.Report) (string, error) {
	return "", &repository.StoreError{Op: "create report", Err: errors.New("db down")}
}

func (failingStore) FindAll(ctx context.Context) ([]models.StoredReport, error) {
	return nil, &repository.StoreError{Op: "find reports", Err: errors.New("db down")}
}

type recordingNotifier struct {
	calls []string
	err   error
}

func (n *recordingNotifier) ReportUploaded(report models.StoredReport, fileName string) error {
	n.calls = append(n.calls, report.ID+"|"+fileName)
	return n.err
}

func newTestService(t *testing.T, repo repository.Store, notifier Notifier) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	return NewService(repo, storage.NewLocalStore(dir), notifier, quietLogger(), &config.Config{MaxUploadBytes: 1 << 20}), dir
}

func TestUploadStoresExtractedReport(t *testing.T) {
	repo := repository.NewMemoryRepository()
	notifier := &recordingNotifier{}
	svc, dir := newTestService(t, repo, notifier)

	stored, err := svc.Upload(context.Background(), "report.xml", strings.NewReader(minimalReport))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if stored.ID == "" {
		t.Fatalf("expected record id")
	}
	if stored.CreditScore != 750 || stored.ReportSummary.TotalAccounts != 5 {
		t.Fatalf("unexpected report %+v", stored.Report)
	}
	if len(stored.CreditAccountsInformation) != 1 || stored.CreditAccountsInformation[0].CurrentBalance != 1000 {
		t.Fatalf("unexpected accounts %+v", stored.CreditAccountsInformation)
	}

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 || all[0].ID != stored.ID {
		t.Fatalf("expected stored report in list, got %+v", all)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "_report.xml") {
		t.Fatalf("expected archived upload, got %v", entries)
	}

	if len(notifier.calls) != 1 || notifier.calls[0] != stored.ID+"|report.xml" {
		t.Fatalf("unexpected notifications %v", notifier.calls)
	}
}

func TestUploadRejectsMalformedXML(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc, _ := newTestService(t, repo, nil)

	_, err := svc.Upload(context.Background(), "bad.xml", strings.NewReader("<a><b></a>"))
	var perr *xmltree.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *xmltree.ParseError, got %v", err)
	}

	all, _ := svc.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(all))
	}
}

func TestUploadSurfacesStoreError(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestService(t, failingStore{}, notifier)

	_, err := svc.Upload(context.Background(), "report.xml", strings.NewReader(minimalReport))
	var serr *repository.StoreError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *repository.StoreError, got %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("no notification expected on failure")
	}
}

func TestUploadTooLarge(t *testing.T) {
	svc := NewService(repository.NewMemoryRepository(), nil, nil, quietLogger(), &config.Config{MaxUploadBytes: 10})

	_, err := svc.Upload(context.Background(), "big.xml", strings.NewReader(minimalReport))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestUploadIgnoresNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc, _ := newTestService(t, repository.NewMemoryRepository(), notifier)

	if _, err := svc.Upload(context.Background(), "report.xml", strings.NewReader(minimalReport)); err != nil {
		t.Fatalf("notifier failure must not fail upload: %v", err)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected one notification attempt")
	}
}

func TestListSurfacesStoreError(t *testing.T) {
	svc, _ := newTestService(t, failingStore{}, nil)
	_, err := svc.List(context.Background())
	var serr *repository.StoreError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *repository.StoreError, got %v", err)
	}
}

func TestListEmpty(t *testing.T) {
	svc, _ := newTestService(t, repository.NewMemoryRepository(), nil)
	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty non-nil list")
	}
}

package email

import (
	"errors"
	"io"
	"net/smtp"
	"strings"
	"testing"

	"github.com/Dan9191/credit-report-service/internal/config"
	"github.com/Dan9191/credit-report-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

func testSender() *Sender {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewSender(&config.Config{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    "2525",
		SenderEmail: "reports@example.com",
		NotifyEmail: "ops@example.com",
	}, logger)
}

func storedReport() models.StoredReport {
	return models.StoredReport{
		ID: "rec-1",
		Report: models.Report{
			Name:        "Jane  Doe",
			CreditScore: 750,
			ReportSummary: models.ReportSummary{
				TotalAccounts:            4,
				ActiveAccounts:           3,
				ClosedAccounts:           1,
				CurrentBalanceAmount:     1200.5,
				Last7DaysCreditEnquiries: 2,
			},
		},
	}
}

func TestReportUploadedSendsSummary(t *testing.T) {
	s := testSender()
	var sent *email.Email
	var gotAddr string
	var gotAuth smtp.Auth
	s.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		sent, gotAddr, gotAuth = e, addr, auth
		return nil
	}

	if err := s.ReportUploaded(storedReport(), "report.xml"); err != nil {
		t.Fatalf("ReportUploaded: %v", err)
	}
	if gotAddr != "smtp.example.com:2525" {
		t.Fatalf("unexpected addr %s", gotAddr)
	}
	if gotAuth != nil {
		t.Fatalf("expected no auth without username")
	}
	if sent.From != "reports@example.com" || len(sent.To) != 1 || sent.To[0] != "ops@example.com" {
		t.Fatalf("unexpected envelope %s -> %v", sent.From, sent.To)
	}
	if sent.Subject != "Credit report uploaded: Jane  Doe" {
		t.Fatalf("unexpected subject %q", sent.Subject)
	}
	body := string(sent.Text)
	for _, want := range []string{"Record ID: rec-1", "File: report.xml", "Credit score: 750", "Accounts: 4 total, 3 active, 1 closed", "Outstanding balance: 1200.50"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestReportUploadedUsesAuthWhenConfigured(t *testing.T) {
	s := testSender()
	s.cfg.SMTPUsername = "user"
	s.cfg.SMTPPassword = "pass"
	var gotAuth smtp.Auth
	s.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		gotAuth = auth
		return nil
	}
	if err := s.ReportUploaded(storedReport(), "report.xml"); err != nil {
		t.Fatalf("ReportUploaded: %v", err)
	}
	if gotAuth == nil {
		t.Fatalf("expected plain auth")
	}
}

func TestReportUploadedAnonymousApplicant(t *testing.T) {
	s := testSender()
	e := s.buildReportUploaded(models.StoredReport{ID: "rec-2"}, "empty.xml")
	if e.Subject != "Credit report uploaded: unknown applicant" {
		t.Fatalf("unexpected subject %q", e.Subject)
	}
}

func TestReportUploadedPropagatesSendError(t *testing.T) {
	s := testSender()
	s.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		return errors.New("connection refused")
	}
	if err := s.ReportUploaded(storedReport(), "report.xml"); err == nil {
		t.Fatalf("expected error")
	}
}

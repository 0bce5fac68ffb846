package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/credit-report-service/internal/config"
	"github.com/Dan9191/credit-report-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   sendFunc
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// ReportUploaded notifies the configured recipient about a stored report
func (s *Sender) ReportUploaded(report models.StoredReport, fileName string) error {
	e := s.buildReportUploaded(report, fileName)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send upload notification to %s: %v", s.cfg.NotifyEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.NotifyEmail, e.Subject)
	return nil
}

func (s *Sender) buildReportUploaded(report models.StoredReport, fileName string) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.NotifyEmail}

	name := report.Name
	if name == "" {
		name = "unknown applicant"
	}
	e.Subject = fmt.Sprintf("Credit report uploaded: %s", name)

	var body strings.Builder
	fmt.Fprintf(&body, "A credit report was uploaded and stored.\n\n")
	fmt.Fprintf(&body, "Record ID: %s\n", report.ID)
	fmt.Fprintf(&body, "File: %s\n", fileName)
	fmt.Fprintf(&body, "Name: %s\n", name)
	fmt.Fprintf(&body, "Credit score: %d\n", report.CreditScore)
	fmt.Fprintf(&body, "Accounts: %d total, %d active, %d closed\n",
		report.ReportSummary.TotalAccounts, report.ReportSummary.ActiveAccounts, report.ReportSummary.ClosedAccounts)
	fmt.Fprintf(&body, "Outstanding balance: %.2f\n", report.ReportSummary.CurrentBalanceAmount)
	fmt.Fprintf(&body, "Enquiries in last 7 days: %d\n", report.ReportSummary.Last7DaysCreditEnquiries)
	body.WriteString("\nBest regards,\nCredit Report Service")
	e.Text = []byte(body.String())
	return e
}

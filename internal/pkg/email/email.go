package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending workflow emails. Delivery
// is best-effort everywhere this is used; callers log failures and move on.
type EmailService interface {
	SendApprovalRequest(to, recipientName, employeeName, requestKind, dateRange, reason, approveLink, rejectLink string) error
	SendStatusUpdate(to, employeeName, requestKind, dateRange, stage, status string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type approvalRequestEmailData struct {
	RecipientName string
	EmployeeName  string
	RequestKind   string
	DateRange     string
	Reason        string
	ApproveLink   string
	RejectLink    string
}

// SendApprovalRequest asks a manager or HR to act on a pending application.
func (s *emailServiceImpl) SendApprovalRequest(to, recipientName, employeeName, requestKind, dateRange, reason, approveLink, rejectLink string) error {
	data := approvalRequestEmailData{
		RecipientName: recipientName,
		EmployeeName:  employeeName,
		RequestKind:   requestKind,
		DateRange:     dateRange,
		Reason:        reason,
		ApproveLink:   approveLink,
		RejectLink:    rejectLink,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "approval_request.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("%s request from %s awaiting your approval", requestKind, employeeName)
	return s.sendHTML(to, subject, body.String())
}

type statusUpdateEmailData struct {
	EmployeeName string
	RequestKind  string
	DateRange    string
	Stage        string
	Status       string
}

// SendStatusUpdate tells the employee the outcome of an approval stage.
func (s *emailServiceImpl) SendStatusUpdate(to, employeeName, requestKind, dateRange, stage, status string) error {
	data := statusUpdateEmailData{
		EmployeeName: employeeName,
		RequestKind:  requestKind,
		DateRange:    dateRange,
		Stage:        stage,
		Status:       status,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "status_update.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Your %s request has been %s", requestKind, status)
	return s.sendHTML(to, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

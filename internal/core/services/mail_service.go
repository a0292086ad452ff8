package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"time"

	"campus-inventory/internal/config"
	"campus-inventory/internal/core/domain"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var reminderSubjects = map[domain.ReminderKind]string{
	domain.ReminderOverdue:  "[%s] Overdue item: please return %s",
	domain.ReminderDueToday: "[%s] %s is due today",
	domain.ReminderDueSoon:  "[%s] %s is due tomorrow",
}

// MailService sends borrower reminders over SMTP
type MailService struct {
	cfg       config.MailConfig
	dialer    *gomail.Dialer
	templates *template.Template
}

// NewMailService parses the reminder templates and prepares the SMTP dialer
func NewMailService(cfg config.MailConfig) (*MailService, error) {
	tmpl, err := template.New("reminders").
		Funcs(template.FuncMap{
			"date": func(t time.Time) string { return t.Format("02 Jan 2006") },
		}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}

	if !cfg.Enabled() {
		log.Println("⚠️ MAIL_HOST not set, borrower reminders will not be sent")
	}

	return &MailService{
		cfg:       cfg,
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		templates: tmpl,
	}, nil
}

// IsEnabled checks if sending is configured
func (s *MailService) IsEnabled() bool {
	return s.cfg.Enabled()
}

// Render builds the subject and HTML body for a reminder
func (s *MailService) Render(kind domain.ReminderKind, data ReminderData) (string, string, error) {
	subjectFormat, ok := reminderSubjects[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown reminder kind %q", kind)
	}
	if data.AppName == "" {
		data.AppName = s.cfg.AppName
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, string(kind)+".html", data); err != nil {
		return "", "", fmt.Errorf("render %s template: %w", kind, err)
	}

	return fmt.Sprintf(subjectFormat, data.AppName, data.ItemName), body.String(), nil
}

// Send renders and delivers one reminder. It fails with domain.ErrMailDisabled
// when no SMTP host is configured, so callers keep the loan un-notified.
func (s *MailService) Send(ctx context.Context, to string, kind domain.ReminderKind, data ReminderData) error {
	if !s.cfg.Enabled() {
		return domain.ErrMailDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := s.Render(kind, data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.From, s.cfg.AppName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	log.Printf("📧 %s reminder sent to %s (loan #%d)", kind, to, data.LoanID)
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"bibiartisan/internal/config"
)

// ErrEmailNotConfigured is returned when sending is enabled without SMTP credentials
var ErrEmailNotConfigured = errors.New("email service not properly configured")

// Email is one outbound plain-text message
type Email struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// Mailer sends email
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails over SMTP
type EmailService struct {
	cfg      *config.EmailConfig
	log      *zap.Logger
	sendMail sendMailFunc
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig, log *zap.Logger) *EmailService {
	return &EmailService{
		cfg:      cfg,
		log:      log.Named("email"),
		sendMail: smtp.SendMail,
	}
}

var _ Mailer = (*EmailService)(nil)

// Send delivers email, or only logs it when sending is disabled
func (s *EmailService) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return errors.New("email has no recipients")
	}

	if !s.cfg.Enabled {
		s.log.Info("Email sending disabled, not sending",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject),
		)
		return nil
	}

	if s.cfg.SMTPHost == "" || s.cfg.HostUser == "" || s.cfg.HostPassword == "" {
		return ErrEmailNotConfigured
	}

	envelopeFrom := s.cfg.HostUser
	if addr, err := mail.ParseAddress(email.From); err == nil {
		envelopeFrom = addr.Address
	}

	auth := smtp.PlainAuth("", s.cfg.HostUser, s.cfg.HostPassword, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := s.sendMail(addr, auth, envelopeFrom, email.To, buildMessage(email)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.log.Info("Email sent", zap.Strings("to", email.To), zap.String("subject", email.Subject))
	return nil
}

// buildMessage renders the RFC 5322 message for a plain-text email
func buildMessage(email Email) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", email.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(email.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

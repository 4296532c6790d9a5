package services

import (
	"context"

	"bibiartisan/internal/config"
)

// DiagnosticsResult lists the configured credentials, "Not Found" when unset.
// It discloses secrets and is only served behind the diagnostics token.
type DiagnosticsResult struct {
	TwilioAccountSID  string `json:"twilio_account_sid"`
	TwilioAuthToken   string `json:"twilio_auth_token"`
	EmailHostUser     string `json:"email_host_user"`
	EmailHostPassword string `json:"email_host_password"`
}

// DiagnosticsService reports credential configuration
type DiagnosticsService struct {
	creds config.Credentials
}

// NewDiagnosticsService creates a new diagnostics service
func NewDiagnosticsService(creds config.Credentials) *DiagnosticsService {
	return &DiagnosticsService{creds: creds}
}

// Show returns the credential values
func (s *DiagnosticsService) Show(ctx context.Context) *DiagnosticsResult {
	c := s.creds.OrNotFound()
	return &DiagnosticsResult{
		TwilioAccountSID:  c.WhatsAppAccountID,
		TwilioAuthToken:   c.WhatsAppAuthToken,
		EmailHostUser:     c.EmailHostUser,
		EmailHostPassword: c.EmailHostPassword,
	}
}

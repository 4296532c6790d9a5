package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"bibiartisan/internal/config"
)

// ErrWhatsAppCredentialsMissing is returned when the Twilio account SID or auth token is unset
var ErrWhatsAppCredentialsMissing = errors.New("whatsapp credentials are missing")

// Messenger sends a WhatsApp message to the business number
type Messenger interface {
	Send(ctx context.Context, body string) error
}

// twilioMessage is the subset of the Twilio message resource we read back
type twilioMessage struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// twilioError is the Twilio REST error body
type twilioError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// WhatsAppService sends WhatsApp messages through the Twilio Messages API
type WhatsAppService struct {
	cfg    *config.WhatsAppConfig
	client *resty.Client
	log    *zap.Logger
}

// NewWhatsAppService creates a new WhatsApp service
func NewWhatsAppService(cfg *config.WhatsAppConfig, log *zap.Logger) *WhatsAppService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &WhatsAppService{
		cfg:    cfg,
		client: client,
		log:    log.Named("whatsapp"),
	}
}

var _ Messenger = (*WhatsAppService)(nil)

// Send posts body from the configured sender to the configured business number
func (s *WhatsAppService) Send(ctx context.Context, body string) error {
	if s.cfg.AccountSID == "" || s.cfg.AuthToken == "" {
		return ErrWhatsAppCredentialsMissing
	}
	s.log.Debug("Using Twilio account", zap.String("account_sid", s.cfg.AccountSID))

	switch strings.ToLower(s.cfg.Provider) {
	case "twilio":
		return s.sendViaTwilio(ctx, body)
	case "console", "dev", "development":
		s.log.Info("WhatsApp message would be sent",
			zap.String("from", s.cfg.From),
			zap.String("to", s.cfg.To),
			zap.String("body", body),
		)
		return nil
	default:
		return fmt.Errorf("unsupported WhatsApp provider: %s", s.cfg.Provider)
	}
}

func (s *WhatsAppService) sendViaTwilio(ctx context.Context, body string) error {
	var result twilioMessage
	var apiErr twilioError

	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken).
		SetPathParam("accountSid", s.cfg.AccountSID).
		SetFormData(map[string]string{
			"From": s.cfg.From,
			"To":   s.cfg.To,
			"Body": body,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/2010-04-01/Accounts/{accountSid}/Messages.json")
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp request: %w", err)
	}

	if resp.IsError() {
		if apiErr.Message != "" {
			return fmt.Errorf("Twilio API error (status %d, code %d): %s", resp.StatusCode(), apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("Twilio API error (status %d)", resp.StatusCode())
	}

	s.log.Info("WhatsApp message sent", zap.String("sid", result.SID), zap.String("status", result.Status))
	return nil
}

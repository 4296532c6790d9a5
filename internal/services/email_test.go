package services

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bibiartisan/internal/config"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestEmailService(cfg *config.EmailConfig, sendErr error) (*EmailService, *[]capturedMail) {
	var sent []capturedMail
	svc := NewEmailService(cfg, zap.NewNop())
	svc.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, capturedMail{addr: addr, from: from, to: to, msg: string(msg)})
		return sendErr
	}
	return svc, &sent
}

func enabledEmailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		Enabled:      true,
		SMTPHost:     "smtp.gmail.com",
		SMTPPort:     587,
		HostUser:     "logicbloomlab@gmail.com",
		HostPassword: "app-password",
	}
}

func TestEmailServiceSend(t *testing.T) {
	svc, sent := newTestEmailService(enabledEmailConfig(), nil)

	err := svc.Send(context.Background(), Email{
		Subject: "Thank You for Contacting Bibiartisan",
		Body:    "Dear Ada,\n\nThanks",
		From:    "Bibiartisan <logicbloomlab@gmail.com>",
		To:      []string{"ada@example.com"},
	})
	require.NoError(t, err)

	require.Len(t, *sent, 1)
	got := (*sent)[0]
	assert.Equal(t, "smtp.gmail.com:587", got.addr)
	assert.Equal(t, "logicbloomlab@gmail.com", got.from)
	assert.Equal(t, []string{"ada@example.com"}, got.to)
	assert.Contains(t, got.msg, "From: Bibiartisan <logicbloomlab@gmail.com>\r\n")
	assert.Contains(t, got.msg, "To: ada@example.com\r\n")
	assert.Contains(t, got.msg, "Subject: Thank You for Contacting Bibiartisan\r\n")
	assert.True(t, strings.HasSuffix(got.msg, "\r\n\r\nDear Ada,\r\n\r\nThanks\r\n"))
}

func TestEmailServiceEnvelopeFallsBackToHostUser(t *testing.T) {
	svc, sent := newTestEmailService(enabledEmailConfig(), nil)

	err := svc.Send(context.Background(), Email{Subject: "s", Body: "b", From: "", To: []string{"x@y.com"}})
	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.Equal(t, "logicbloomlab@gmail.com", (*sent)[0].from)
}

func TestEmailServiceWrapsTransportError(t *testing.T) {
	transportErr := errors.New("535 authentication failed")
	svc, _ := newTestEmailService(enabledEmailConfig(), transportErr)

	err := svc.Send(context.Background(), Email{Subject: "s", Body: "b", To: []string{"x@y.com"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
}

func TestEmailServiceNotConfigured(t *testing.T) {
	cfg := enabledEmailConfig()
	cfg.HostPassword = ""
	svc, sent := newTestEmailService(cfg, nil)

	err := svc.Send(context.Background(), Email{Subject: "s", Body: "b", To: []string{"x@y.com"}})
	assert.ErrorIs(t, err, ErrEmailNotConfigured)
	assert.Empty(t, *sent)
}

func TestEmailServiceDisabledOnlyLogs(t *testing.T) {
	svc, sent := newTestEmailService(&config.EmailConfig{Enabled: false}, nil)

	err := svc.Send(context.Background(), Email{Subject: "s", Body: "b", To: []string{"x@y.com"}})
	require.NoError(t, err)
	assert.Empty(t, *sent)
	assert.False(t, svc.IsEnabled())
}

func TestEmailServiceRejectsMissingRecipients(t *testing.T) {
	svc, sent := newTestEmailService(enabledEmailConfig(), nil)

	err := svc.Send(context.Background(), Email{Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Empty(t, *sent)
}

func TestEmailServiceCanceledContext(t *testing.T) {
	svc, sent := newTestEmailService(enabledEmailConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Send(ctx, Email{Subject: "s", Body: "b", To: []string{"x@y.com"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *sent)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"go.uber.org/zap"

	"bibiartisan/internal/config"
	"bibiartisan/internal/domain"
	"bibiartisan/internal/metrics"
	"bibiartisan/internal/store"
)

// User-facing messages
const (
	MsgNameTooShort        = "Name must be at least 2 characters long."
	MsgContactRequired     = "Email or phone is required."
	MsgInvalidRequestType  = "Invalid request type."
	MsgMessageRequired     = "Message is required."
	MsgSubmitted           = "Your inquiry has been submitted successfully!"
	MsgSubmittedCheckEmail = "Your inquiry has been submitted successfully! Check your email for a confirmation."
)

const notProvided = "Not provided"

// Only gates the auto-reply; the inquiry is accepted either way.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Channel names one notification sent after an inquiry is saved
type Channel string

const (
	ChannelConfirmationEmail Channel = "confirmation_email"
	ChannelBusinessEmail     Channel = "business_email"
	ChannelWhatsApp          Channel = "whatsapp"
)

// InquiryForm is the raw, untrusted form submission
type InquiryForm struct {
	Name        string
	Email       string
	Phone       string
	RequestType string
	Message     string
}

// ChannelOutcome records what happened on one notification channel
type ChannelOutcome struct {
	Channel   Channel
	Attempted bool
	Err       error
}

// Succeeded reports whether the channel was attempted and delivered
func (o ChannelOutcome) Succeeded() bool {
	return o.Attempted && o.Err == nil
}

// SubmitResult is the outcome of a persisted inquiry
type SubmitResult struct {
	Inquiry    *domain.Inquiry
	EmailValid bool
	Outcomes   []ChannelOutcome
	Messages   []domain.Message
}

// Outcome returns the outcome recorded for ch
func (r *SubmitResult) Outcome(ch Channel) (ChannelOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Channel == ch {
			return o, true
		}
	}
	return ChannelOutcome{}, false
}

// InquiryService validates, saves and announces contact form submissions
type InquiryService struct {
	store     store.InquiryWriter
	mailer    Mailer
	messenger Messenger
	emailCfg  *config.EmailConfig
	log       *zap.Logger
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(s store.InquiryWriter, mailer Mailer, messenger Messenger, emailCfg *config.EmailConfig, log *zap.Logger) *InquiryService {
	return &InquiryService{
		store:     s,
		mailer:    mailer,
		messenger: messenger,
		emailCfg:  emailCfg,
		log:       log.Named("inquiry"),
	}
}

// ValidateInquiryForm checks the form in order and returns the first failure
func ValidateInquiryForm(form InquiryForm) (domain.RequestType, error) {
	if utf8.RuneCountInString(form.Name) < 2 {
		return "", newValidationError("name", MsgNameTooShort)
	}
	if form.Email == "" && form.Phone == "" {
		return "", newValidationError("email", MsgContactRequired)
	}
	requestType, err := domain.ParseRequestType(form.RequestType)
	if err != nil {
		return "", newValidationError("request-type", MsgInvalidRequestType)
	}
	if form.Message == "" {
		return "", newValidationError("message", MsgMessageRequired)
	}
	return requestType, nil
}

// IsEmailValid reports whether email looks deliverable enough for an auto-reply
func IsEmailValid(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// Submit validates form, saves it, then tries each notification channel in turn.
// A *ValidationError means nothing was saved. Any other error comes from the store.
// Notification failures never produce an error; they are reported in the result.
func (s *InquiryService) Submit(ctx context.Context, form InquiryForm) (*SubmitResult, error) {
	requestType, err := ValidateInquiryForm(form)
	if err != nil {
		field := "unknown"
		var verr *ValidationError
		if errors.As(err, &verr) {
			field = verr.Field
		}
		metrics.RecordInquiryRejected(field)
		return nil, err
	}

	inquiry := &domain.Inquiry{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		RequestType: requestType,
		Message:     form.Message,
	}
	if err := s.store.CreateInquiry(ctx, inquiry); err != nil {
		s.log.Error("Failed to save inquiry", zap.Error(err))
		return nil, err
	}

	s.log.Info("Inquiry saved",
		zap.Uint("id", inquiry.ID),
		zap.String("request_type", string(inquiry.RequestType)),
	)
	metrics.RecordInquirySubmission(string(inquiry.RequestType))

	// The inquiry is saved; a disconnecting submitter must not stop the notifications.
	notifyCtx := context.WithoutCancel(ctx)

	result := &SubmitResult{
		Inquiry:    inquiry,
		EmailValid: IsEmailValid(inquiry.Email),
	}

	if result.EmailValid {
		err := s.sendConfirmation(notifyCtx, inquiry)
		result.record(ChannelConfirmationEmail, err)
		if err != nil {
			s.log.Error("Failed to send auto-reply email", zap.Uint("id", inquiry.ID), zap.Error(err))
			result.Messages = append(result.Messages, domain.Error(fmt.Sprintf("Failed to send confirmation email: %v", err)))
		} else {
			result.Messages = append(result.Messages, domain.Success(MsgSubmittedCheckEmail))
		}
	} else {
		result.Outcomes = append(result.Outcomes, ChannelOutcome{Channel: ChannelConfirmationEmail})
		result.Messages = append(result.Messages, domain.Success(MsgSubmitted))
	}

	err = s.sendBusinessEmail(notifyCtx, inquiry)
	result.record(ChannelBusinessEmail, err)
	if err != nil {
		s.log.Error("Failed to send brand email", zap.Uint("id", inquiry.ID), zap.Error(err))
		result.Messages = append(result.Messages, domain.Error(fmt.Sprintf("Failed to notify brand: %v", err)))
	}

	err = s.messenger.Send(notifyCtx, WhatsAppBody(inquiry))
	result.record(ChannelWhatsApp, err)
	if err != nil {
		s.log.Error("Failed to send WhatsApp message", zap.Uint("id", inquiry.ID), zap.Error(err))
		result.Messages = append(result.Messages, domain.Error(fmt.Sprintf("Failed to send WhatsApp message: %v", err)))
	}

	return result, nil
}

func (r *SubmitResult) record(ch Channel, err error) {
	r.Outcomes = append(r.Outcomes, ChannelOutcome{Channel: ch, Attempted: true, Err: err})
	metrics.RecordNotification(string(ch), err)
}

func (s *InquiryService) sendConfirmation(ctx context.Context, inquiry *domain.Inquiry) error {
	return s.mailer.Send(ctx, Email{
		Subject: "Thank You for Contacting Bibiartisan",
		Body: fmt.Sprintf("Dear %s,\n\nThank you for your %s request:\n\n%s\n\nOur team will get back to you soon.\n\nBest,\nBibiartisan Team",
			inquiry.Name, inquiry.RequestType, inquiry.Message),
		From: s.emailCfg.ConfirmationFrom,
		To:   []string{inquiry.Email},
	})
}

func (s *InquiryService) sendBusinessEmail(ctx context.Context, inquiry *domain.Inquiry) error {
	return s.mailer.Send(ctx, Email{
		Subject: fmt.Sprintf("New Contact Form Submission: %s", inquiry.RequestType),
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nRequest Type: %s\nMessage: %s",
			inquiry.Name, orNotProvided(inquiry.Email), orNotProvided(inquiry.Phone), inquiry.RequestType, inquiry.Message),
		From: s.emailCfg.BusinessFrom,
		To:   []string{s.emailCfg.BusinessTo},
	})
}

// WhatsAppBody formats the labelled submission summary sent to the business
func WhatsAppBody(inquiry *domain.Inquiry) string {
	return fmt.Sprintf("*New Contact Form Submission*\n"+
		"*Name*: %s\n"+
		"*Email*: %s\n"+
		"*Phone*: %s\n"+
		"*Request Type*: %s\n"+
		"*Message*: %s",
		inquiry.Name, orNotProvided(inquiry.Email), orNotProvided(inquiry.Phone), inquiry.RequestType, inquiry.Message)
}

func orNotProvided(v string) string {
	if v == "" {
		return notProvided
	}
	return v
}

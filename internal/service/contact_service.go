package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/events"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// MailDraft is a composed message the client hands to its mail program.
type MailDraft struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailto_url"`
}

// ContactService composes contact mail drafts. Nothing is sent server side.
type ContactService struct {
	recipient      string
	defaultSubject string
	dispatcher     events.Dispatcher
	now            Clock
}

// NewContactService constructs the service.
func NewContactService(cfg config.ContactConfig, dispatcher events.Dispatcher, clock Clock) *ContactService {
	return &ContactService{
		recipient:      cfg.Recipient,
		defaultSubject: cfg.DefaultSubject,
		dispatcher:     dispatcher,
		now:            clock.orDefault(),
	}
}

// Compose validates the form and builds a mailto draft.
func (s *ContactService) Compose(ctx context.Context, input ContactInput) (*MailDraft, error) {
	var missing []string
	if blank(input.Name) {
		missing = append(missing, "name")
	}
	if blank(input.Email) {
		missing = append(missing, "email")
	}
	if blank(input.Message) {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("please fill in all fields", map[string]any{"missing": missing})
	}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = s.defaultSubject
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", input.Name, input.Email, input.Message)

	draft := &MailDraft{
		Recipient: s.recipient,
		Subject:   subject,
		Body:      body,
		MailtoURL: fmt.Sprintf("mailto:%s?subject=%s&body=%s", s.recipient, mailtoEscape(subject), mailtoEscape(body)),
	}

	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:    events.EventContactDraftComposed,
		Actor:   events.Actor{Email: input.Email},
		Payload: events.ContactDraftPayload{Recipient: draft.Recipient, Subject: draft.Subject, From: input.Email},
	})
	return draft, nil
}

// mailtoEscape percent-encodes a mailto header value. Spaces become %20
// since mail clients do not decode "+".
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

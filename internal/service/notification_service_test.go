package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/events"
)

func TestNotificationService_LogsIdeaEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "https://hooks.example.com/ideas",
	})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventIdeaSubmitted,
		SubjectID: "idea-1",
		Payload:   events.IdeaSubmittedPayload{Title: "X", CustomerEmail: "c@example.com"},
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if got := logs.FilterMessage("IdeaSubmitted").Len(); got != 1 {
		t.Errorf("IdeaSubmitted logs = %d, want 1", got)
	}
	if got := logs.FilterMessage("sendEmailNotificationStub").Len(); got != 1 {
		t.Errorf("email stub logs = %d, want 1", got)
	}
	if got := logs.FilterMessage("sendWebhookNotificationStub").Len(); got != 1 {
		t.Errorf("webhook stub logs = %d, want 1", got)
	}
}

func TestNotificationService_SkipsUnconfiguredChannels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{}).RegisterHandlers()

	_ = dispatcher.Publish(context.Background(), events.Event{Type: events.EventIdeaProgressAdded, SubjectID: "idea-1"})

	if got := logs.FilterMessage("IdeaProgressAdded").Len(); got != 1 {
		t.Errorf("IdeaProgressAdded logs = %d, want 1", got)
	}
	if got := logs.FilterMessage("sendEmailNotificationStub").Len(); got != 0 {
		t.Errorf("email stub logs = %d, want 0", got)
	}
}

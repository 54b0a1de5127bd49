package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIdeaSubmitted, n.handleIdeaSubmitted)
	n.dispatcher.Subscribe(events.EventIdeaStatusChanged, n.handleIdeaStatusChanged)
	n.dispatcher.Subscribe(events.EventIdeaAssigned, n.handleIdeaAssigned)
	n.dispatcher.Subscribe(events.EventIdeaProgressAdded, n.handleIdeaProgressAdded)
	n.dispatcher.Subscribe(events.EventDeveloperSubmitted, n.handleDeveloperSubmitted)
	n.dispatcher.Subscribe(events.EventDeveloperApproved, n.handleDeveloperDecision)
	n.dispatcher.Subscribe(events.EventDeveloperRejected, n.handleDeveloperDecision)
	n.dispatcher.Subscribe(events.EventUserRegistered, n.logOnly)
	n.dispatcher.Subscribe(events.EventContactDraftComposed, n.logOnly)
}

func (n *NotificationService) handleIdeaSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("IdeaSubmitted", zap.String("idea_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIdeaStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("IdeaStatusChanged", zap.String("idea_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIdeaAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("IdeaAssigned", zap.String("idea_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIdeaProgressAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("IdeaProgressAdded", zap.String("idea_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDeveloperSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("DeveloperAwaitingApproval", zap.String("pending_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDeveloperDecision(ctx context.Context, event events.Event) error {
	n.logger.Info("DeveloperReviewed",
		zap.String("user_id", event.SubjectID),
		zap.String("event_type", string(event.Type)),
		zap.String("reviewer", event.Actor.UserID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) logOnly(_ context.Context, event events.Event) error {
	n.logger.Debug("event", zap.String("event_type", string(event.Type)), zap.String("subject_id", event.SubjectID))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/events"
	"github.com/spec-kit/ideaflow/internal/service"
)

// StartNotificationWorker subscribes the idea and account notification stubs
// to the dispatcher and returns the wired service.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	notifications := service.NewNotificationService(dispatcher, logger, cfg)
	notifications.RegisterHandlers()

	logger.Info("notification worker started",
		zap.String("email_from", cfg.EmailFrom),
		zap.Bool("webhook", cfg.WebhookURL != ""))
	return notifications
}

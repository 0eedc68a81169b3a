package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/workshop-service/internal/events"
	"github.com/spec-kit/workshop-service/internal/service"
)

// StartNotificationWorker registers notification handlers on the
// dispatcher. Events are forwarded to Kafka when a publisher is given.
func StartNotificationWorker(dispatcher events.Dispatcher, publisher *events.KafkaPublisher, logger *zap.Logger) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	var sink service.EventSink
	if publisher != nil {
		sink = publisher
	}
	notificationService := service.NewNotificationService(dispatcher, sink, logger)
	notificationService.RegisterHandlers()
	return notificationService
}

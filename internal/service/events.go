package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/workshop-service/internal/events"
)

// publish emits an event after the state change has been stored. Handler
// failures are logged and never fail the request.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, eventType events.EventType, workshopID int, payload any) {
	if dispatcher == nil {
		return
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		WorkshopID: workshopID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed",
			zap.String("event_type", string(eventType)),
			zap.Int("workshop_id", workshopID),
			zap.Error(err))
	}
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/workshop-service/internal/events"
)

// EventSink receives events for delivery outside the process.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// NotificationService logs domain events and forwards them to the sink.
type NotificationService struct {
	dispatcher events.Dispatcher
	sink       EventSink
	logger     *zap.Logger
}

// NewNotificationService creates the service. The sink may be nil.
func NewNotificationService(dispatcher events.Dispatcher, sink EventSink, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sink:       sink,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventWorkshopCreated, n.handle)
	n.dispatcher.Subscribe(events.EventWorkshopUpdated, n.handle)
	n.dispatcher.Subscribe(events.EventWorkshopDeleted, n.handle)
	n.dispatcher.Subscribe(events.EventRegistrationCreated, n.handleRegistrationCreated)
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	n.logger.Debug(string(event.Type), zap.Int("workshop_id", event.WorkshopID), zap.Any("payload", event.Payload))
	return n.forward(ctx, event)
}

func (n *NotificationService) handleRegistrationCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RegistrationCreatedPayload)
	if ok && payload.SeatsTaken >= payload.Capacity {
		n.logger.Info("workshop filled", zap.Int("workshop_id", event.WorkshopID), zap.Int("capacity", payload.Capacity))
	}
	return n.forward(ctx, event)
}

func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	if n.sink == nil {
		return nil
	}
	return n.sink.Publish(ctx, event)
}

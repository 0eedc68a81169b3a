package events

import (
	"time"

	"github.com/spec-kit/workshop-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventWorkshopCreated     EventType = "workshop_created"
	EventWorkshopUpdated     EventType = "workshop_updated"
	EventWorkshopDeleted     EventType = "workshop_deleted"
	EventRegistrationCreated EventType = "registration_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	WorkshopID int       `json:"workshop_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// WorkshopPayload carries the workshop state after a create or update.
type WorkshopPayload struct {
	Title    string                `json:"title"`
	Category domain.Category       `json:"category"`
	Status   domain.WorkshopStatus `json:"status"`
	Capacity int                   `json:"capacity"`
}

// RegistrationCreatedPayload payload.
type RegistrationCreatedPayload struct {
	RegistrationID int    `json:"registration_id"`
	Email          string `json:"email"`
	SeatsTaken     int    `json:"seats_taken"`
	Capacity       int    `json:"capacity"`
}

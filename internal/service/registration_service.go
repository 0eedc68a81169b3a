package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/workshop-service/internal/capacity"
	"github.com/spec-kit/workshop-service/internal/domain"
	"github.com/spec-kit/workshop-service/internal/events"
	"github.com/spec-kit/workshop-service/internal/repository"
	apperrors "github.com/spec-kit/workshop-service/pkg/util/errorutil"
)

// Registration outcomes reported to the recorder.
const (
	OutcomeCreated  = "created"
	OutcomeFull     = "full"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// ErrCodeWorkshopFull identifies a rejected registration for a full workshop.
const ErrCodeWorkshopFull = "WORKSHOP_FULL"

// RegistrationRecorder observes registration outcomes.
type RegistrationRecorder interface {
	RecordRegistration(outcome string)
}

// RegistrationService signs attendees up for workshops.
type RegistrationService struct {
	workshops     repository.WorkshopRepository
	registrations repository.RegistrationRepository
	guard         capacity.Guard
	dispatcher    events.Dispatcher
	recorder      RegistrationRecorder
	logger        *zap.Logger
}

// RegistrationDependencies bundles collaborators for the registration service.
type RegistrationDependencies struct {
	WorkshopRepo     repository.WorkshopRepository
	RegistrationRepo repository.RegistrationRepository
	Guard            capacity.Guard
	Dispatcher       events.Dispatcher
	Recorder         RegistrationRecorder
	Logger           *zap.Logger
}

// NewRegistrationService constructs the service. A nil Guard falls back to
// an in-process guard.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	guard := deps.Guard
	if guard == nil {
		guard = capacity.NewLocalGuard()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		workshops:     deps.WorkshopRepo,
		registrations: deps.RegistrationRepo,
		guard:         guard,
		dispatcher:    deps.Dispatcher,
		recorder:      deps.Recorder,
		logger:        logger,
	}
}

// Register creates a registration if the workshop exists and has a free
// seat. The count check and the insert run under the workshop's lock.
func (s *RegistrationService) Register(ctx context.Context, input domain.Registration) (*domain.Registration, error) {
	var (
		created  *domain.Registration
		workshop *domain.Workshop
		taken    int
	)
	err := s.guard.Do(ctx, input.WorkshopID, func(ctx context.Context) error {
		var err error
		workshop, err = s.workshops.GetWorkshopByID(ctx, input.WorkshopID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if workshop == nil {
			return workshopNotFound(input.WorkshopID)
		}

		taken, err = s.registrations.GetRegistrationCount(ctx, input.WorkshopID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if taken >= workshop.Capacity {
			return apperrors.NewDomainError(ErrCodeWorkshopFull, "Workshop is at full capacity", http.StatusBadRequest,
				map[string]any{"capacity": workshop.Capacity, "registrations": taken})
		}

		created, err = s.registrations.CreateRegistration(ctx, input)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		s.record(outcomeOf(err))
		return nil, mapGuardError(err)
	}

	s.record(OutcomeCreated)
	s.logger.Info("registration created",
		zap.Int("registration_id", created.ID),
		zap.Int("workshop_id", created.WorkshopID),
		zap.Int("seats_taken", taken+1),
		zap.Int("capacity", workshop.Capacity))
	publish(ctx, s.dispatcher, s.logger, events.EventRegistrationCreated, created.WorkshopID, events.RegistrationCreatedPayload{
		RegistrationID: created.ID,
		Email:          created.Email,
		SeatsTaken:     taken + 1,
		Capacity:       workshop.Capacity,
	})
	return created, nil
}

func (s *RegistrationService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordRegistration(outcome)
	}
}

func outcomeOf(err error) string {
	de := apperrors.ToDomainError(err)
	switch {
	case de.Code == ErrCodeWorkshopFull:
		return OutcomeFull
	case de.HTTPStatus == http.StatusNotFound:
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

func mapGuardError(err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, capacity.ErrLockUnavailable) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewDomainError("REGISTRATION_BUSY", "registration could not be processed, please retry", http.StatusServiceUnavailable, nil)
	}
	return apperrors.NewInternalError(err)
}

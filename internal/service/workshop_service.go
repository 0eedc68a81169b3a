package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/workshop-service/internal/domain"
	"github.com/spec-kit/workshop-service/internal/events"
	"github.com/spec-kit/workshop-service/internal/repository"
	apperrors "github.com/spec-kit/workshop-service/pkg/util/errorutil"
)

// WorkshopService coordinates workshop catalogue workflows.
type WorkshopService struct {
	workshops     repository.WorkshopRepository
	registrations repository.RegistrationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// WorkshopDependencies bundles collaborators for the workshop service.
type WorkshopDependencies struct {
	WorkshopRepo     repository.WorkshopRepository
	RegistrationRepo repository.RegistrationRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// WorkshopFilter describes catalogue listing filters. Category wins over
// Status when both are set; Query matches title or summary.
type WorkshopFilter struct {
	Category *domain.Category
	Status   *domain.WorkshopStatus
	Query    string
}

// WorkshopDetail is a workshop with its current registration count.
type WorkshopDetail struct {
	domain.Workshop
	RegistrationCount int `json:"registrationCount"`
}

// NewWorkshopService constructs the service.
func NewWorkshopService(deps WorkshopDependencies) *WorkshopService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkshopService{
		workshops:     deps.WorkshopRepo,
		registrations: deps.RegistrationRepo,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
	}
}

// List returns workshops in insertion order.
func (s *WorkshopService) List(ctx context.Context, filter WorkshopFilter) ([]domain.Workshop, error) {
	var (
		workshops []domain.Workshop
		err       error
	)
	switch {
	case filter.Category != nil:
		workshops, err = s.workshops.GetWorkshopsByCategory(ctx, *filter.Category)
	case filter.Status != nil:
		workshops, err = s.workshops.GetWorkshopsByStatus(ctx, *filter.Status)
	default:
		workshops, err = s.workshops.GetAllWorkshops(ctx)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	if query == "" {
		return workshops, nil
	}
	matched := make([]domain.Workshop, 0, len(workshops))
	for _, w := range workshops {
		if strings.Contains(strings.ToLower(w.Title), query) || strings.Contains(strings.ToLower(w.Summary), query) {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

// Get returns the workshop together with its registration count.
func (s *WorkshopService) Get(ctx context.Context, id int) (*WorkshopDetail, error) {
	workshop, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.registrations.GetRegistrationCount(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &WorkshopDetail{Workshop: *workshop, RegistrationCount: count}, nil
}

// Create stores a validated workshop.
func (s *WorkshopService) Create(ctx context.Context, input domain.Workshop) (*domain.Workshop, error) {
	workshop, err := s.workshops.CreateWorkshop(ctx, input)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("workshop created", zap.Int("workshop_id", workshop.ID), zap.String("title", workshop.Title))
	publish(ctx, s.dispatcher, s.logger, events.EventWorkshopCreated, workshop.ID, workshopPayload(workshop))
	return workshop, nil
}

// Update merges the patch onto the stored workshop.
func (s *WorkshopService) Update(ctx context.Context, id int, patch domain.WorkshopPatch) (*domain.Workshop, error) {
	workshop, err := s.workshops.UpdateWorkshop(ctx, id, patch)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if workshop == nil {
		return nil, workshopNotFound(id)
	}
	publish(ctx, s.dispatcher, s.logger, events.EventWorkshopUpdated, workshop.ID, workshopPayload(workshop))
	return workshop, nil
}

// Delete removes the workshop. Its registrations are kept.
func (s *WorkshopService) Delete(ctx context.Context, id int) error {
	existed, err := s.workshops.DeleteWorkshop(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !existed {
		return workshopNotFound(id)
	}
	s.logger.Info("workshop deleted", zap.Int("workshop_id", id))
	publish(ctx, s.dispatcher, s.logger, events.EventWorkshopDeleted, id, nil)
	return nil
}

// Registrations lists sign-ups for an existing workshop.
func (s *WorkshopService) Registrations(ctx context.Context, id int) ([]domain.Registration, error) {
	if _, err := s.mustGet(ctx, id); err != nil {
		return nil, err
	}
	regs, err := s.registrations.GetRegistrationsByWorkshopID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return regs, nil
}

// RegistrationCount counts sign-ups for any id, existing workshop or not.
func (s *WorkshopService) RegistrationCount(ctx context.Context, id int) (int, error) {
	count, err := s.registrations.GetRegistrationCount(ctx, id)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return count, nil
}

func (s *WorkshopService) mustGet(ctx context.Context, id int) (*domain.Workshop, error) {
	workshop, err := s.workshops.GetWorkshopByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if workshop == nil {
		return nil, workshopNotFound(id)
	}
	return workshop, nil
}

func workshopNotFound(id int) error {
	return apperrors.NewNotFound("Workshop", map[string]any{"workshopId": id})
}

func workshopPayload(w *domain.Workshop) events.WorkshopPayload {
	return events.WorkshopPayload{
		Title:    w.Title,
		Category: w.Category,
		Status:   w.Status,
		Capacity: w.Capacity,
	}
}

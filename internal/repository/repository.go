package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/workshop-service/internal/domain"
)

// ErrUsernameTaken is returned by stores whose backing table enforces a
// unique username. The in-memory store never returns it.
var ErrUsernameTaken = errors.New("username already exists")

// UserRepository defines persistence access for users. Lookups return a nil
// user, not an error, when nothing matches.
type UserRepository interface {
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
}

// WorkshopRepository defines persistence access for workshops. Lists are
// returned in insertion order and are empty, never nil, when nothing matches.
type WorkshopRepository interface {
	GetAllWorkshops(ctx context.Context) ([]domain.Workshop, error)
	GetWorkshopByID(ctx context.Context, id int) (*domain.Workshop, error)
	GetWorkshopsByCategory(ctx context.Context, category domain.Category) ([]domain.Workshop, error)
	GetWorkshopsByStatus(ctx context.Context, status domain.WorkshopStatus) ([]domain.Workshop, error)
	CreateWorkshop(ctx context.Context, workshop domain.Workshop) (*domain.Workshop, error)
	UpdateWorkshop(ctx context.Context, id int, patch domain.WorkshopPatch) (*domain.Workshop, error)
	DeleteWorkshop(ctx context.Context, id int) (bool, error)
}

// RegistrationRepository defines persistence access for registrations.
// CreateRegistration does not enforce workshop capacity.
type RegistrationRepository interface {
	GetRegistrationsByWorkshopID(ctx context.Context, workshopID int) ([]domain.Registration, error)
	CreateRegistration(ctx context.Context, registration domain.Registration) (*domain.Registration, error)
	GetRegistrationCount(ctx context.Context, workshopID int) (int, error)
}

// Store is the full data-access contract of the service.
type Store interface {
	UserRepository
	WorkshopRepository
	RegistrationRepository
}

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/tidwall/btree"

	"github.com/spec-kit/workshop-service/internal/domain"
)

// MemoryStore keeps every entity in process memory. Tables are ordered by
// id, and ids come from per-entity counters that are never rewound, so a
// scan yields insertion order.
type MemoryStore struct {
	mu sync.RWMutex

	users         *btree.Map[int, domain.User]
	workshops     *btree.Map[int, domain.Workshop]
	registrations *btree.Map[int, domain.Registration]

	nextUserID         int
	nextWorkshopID     int
	nextRegistrationID int

	now func() time.Time
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the clock used to stamp registrations.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		users:              btree.NewMap[int, domain.User](32),
		workshops:          btree.NewMap[int, domain.Workshop](32),
		registrations:      btree.NewMap[int, domain.Registration](32),
		nextUserID:         1,
		nextWorkshopID:     1,
		nextRegistrationID: 1,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) GetUser(_ context.Context, id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users.Get(id)
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetUserByUsername returns the first user, by id, with the given name.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.User
	s.users.Scan(func(_ int, user domain.User) bool {
		if user.Username == username {
			found = &user
			return false
		}
		return true
	})
	return found, nil
}

// CreateUser stores the user under the next id. Usernames are not checked
// for uniqueness.
func (s *MemoryStore) CreateUser(_ context.Context, user domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextUserID
	s.nextUserID++
	s.users.Set(user.ID, user)
	return &user, nil
}

func (s *MemoryStore) GetAllWorkshops(_ context.Context) ([]domain.Workshop, error) {
	return s.filterWorkshops(func(domain.Workshop) bool { return true }), nil
}

func (s *MemoryStore) GetWorkshopByID(_ context.Context, id int) (*domain.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	workshop, ok := s.workshops.Get(id)
	if !ok {
		return nil, nil
	}
	workshop = workshop.Clone()
	return &workshop, nil
}

func (s *MemoryStore) GetWorkshopsByCategory(_ context.Context, category domain.Category) ([]domain.Workshop, error) {
	return s.filterWorkshops(func(w domain.Workshop) bool { return w.Category == category }), nil
}

func (s *MemoryStore) GetWorkshopsByStatus(_ context.Context, status domain.WorkshopStatus) ([]domain.Workshop, error) {
	return s.filterWorkshops(func(w domain.Workshop) bool { return w.Status == status }), nil
}

func (s *MemoryStore) filterWorkshops(keep func(domain.Workshop) bool) []domain.Workshop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Workshop, 0, s.workshops.Len())
	s.workshops.Scan(func(_ int, w domain.Workshop) bool {
		if keep(w) {
			result = append(result, w.Clone())
		}
		return true
	})
	return result
}

func (s *MemoryStore) CreateWorkshop(_ context.Context, workshop domain.Workshop) (*domain.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	workshop = workshop.Clone()
	workshop.ID = s.nextWorkshopID
	s.nextWorkshopID++
	s.workshops.Set(workshop.ID, workshop)
	out := workshop.Clone()
	return &out, nil
}

func (s *MemoryStore) UpdateWorkshop(_ context.Context, id int, patch domain.WorkshopPatch) (*domain.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.workshops.Get(id)
	if !ok {
		return nil, nil
	}
	updated := existing.Clone()
	patch.Apply(&updated)
	updated.ID = id
	s.workshops.Set(id, updated)
	out := updated.Clone()
	return &out, nil
}

// DeleteWorkshop removes the workshop and leaves its registrations in place.
func (s *MemoryStore) DeleteWorkshop(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.workshops.Delete(id)
	return existed, nil
}

func (s *MemoryStore) GetRegistrationsByWorkshopID(_ context.Context, workshopID int) ([]domain.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Registration, 0)
	s.registrations.Scan(func(_ int, r domain.Registration) bool {
		if r.WorkshopID == workshopID {
			result = append(result, cloneRegistration(r))
		}
		return true
	})
	return result, nil
}

func (s *MemoryStore) CreateRegistration(_ context.Context, registration domain.Registration) (*domain.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	registration = cloneRegistration(registration)
	registration.ID = s.nextRegistrationID
	s.nextRegistrationID++
	registration.RegisteredAt = s.now().UTC()
	s.registrations.Set(registration.ID, registration)
	out := cloneRegistration(registration)
	return &out, nil
}

func (s *MemoryStore) GetRegistrationCount(_ context.Context, workshopID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	s.registrations.Scan(func(_ int, r domain.Registration) bool {
		if r.WorkshopID == workshopID {
			count++
		}
		return true
	})
	return count, nil
}

func cloneRegistration(r domain.Registration) domain.Registration {
	r.Phone = cloneString(r.Phone)
	r.Expectations = cloneString(r.Expectations)
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

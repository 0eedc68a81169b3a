package domain

import (
	"slices"
	"time"
)

// ExperienceLevel is the self-reported skill level of an attendee.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// ExperienceLevels lists accepted levels.
var ExperienceLevels = []ExperienceLevel{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}

// Valid reports whether l is a known level.
func (l ExperienceLevel) Valid() bool {
	return slices.Contains(ExperienceLevels, l)
}

// Registration is a single attendee sign-up for one workshop.
type Registration struct {
	ID              int             `json:"id"`
	WorkshopID      int             `json:"workshopId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Email           string          `json:"email"`
	Phone           *string         `json:"phone"`
	Occupation      string          `json:"occupation"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Expectations    *string         `json:"expectations"`
	RegisteredAt    time.Time       `json:"registeredAt"`
}

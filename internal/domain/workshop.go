package domain

import (
	"slices"
	"time"
)

// Category groups workshops by subject.
type Category string

const (
	CategoryTechnology          Category = "Technology"
	CategoryDesign              Category = "Design"
	CategoryBusiness            Category = "Business"
	CategoryMarketing           Category = "Marketing"
	CategoryPersonalDevelopment Category = "Personal Development"
)

// Categories lists accepted categories in display order.
var Categories = []Category{
	CategoryTechnology,
	CategoryDesign,
	CategoryBusiness,
	CategoryMarketing,
	CategoryPersonalDevelopment,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// WorkshopStatus enumerates publication states.
type WorkshopStatus string

const (
	WorkshopStatusUpcoming WorkshopStatus = "upcoming"
	WorkshopStatusPast     WorkshopStatus = "past"
	WorkshopStatusDraft    WorkshopStatus = "draft"
)

// WorkshopStatuses lists accepted statuses.
var WorkshopStatuses = []WorkshopStatus{WorkshopStatusUpcoming, WorkshopStatusPast, WorkshopStatusDraft}

// Valid reports whether s is a known status.
func (s WorkshopStatus) Valid() bool {
	return slices.Contains(WorkshopStatuses, s)
}

// Workshop is an offered learning session.
type Workshop struct {
	ID                 int            `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Summary            string         `json:"summary"`
	ImageURL           string         `json:"imageUrl"`
	Category           Category       `json:"category"`
	Date               time.Time      `json:"date"`
	StartTime          string         `json:"startTime"`
	EndTime            string         `json:"endTime"`
	Location           string         `json:"location"`
	Capacity           int            `json:"capacity"`
	Instructor         string         `json:"instructor"`
	InstructorTitle    string         `json:"instructorTitle"`
	InstructorBio      string         `json:"instructorBio"`
	InstructorImageURL string         `json:"instructorImageUrl"`
	LearningPoints     []string       `json:"learningPoints"`
	Requirements       []string       `json:"requirements"`
	Status             WorkshopStatus `json:"status"`
}

// Clone returns a copy that shares no list storage with w.
func (w Workshop) Clone() Workshop {
	w.LearningPoints = slices.Clone(w.LearningPoints)
	w.Requirements = slices.Clone(w.Requirements)
	return w
}

// WorkshopPatch carries a partial update. Nil fields are left untouched.
type WorkshopPatch struct {
	Title              *string
	Description        *string
	Summary            *string
	ImageURL           *string
	Category           *Category
	Date               *time.Time
	StartTime          *string
	EndTime            *string
	Location           *string
	Capacity           *int
	Instructor         *string
	InstructorTitle    *string
	InstructorBio      *string
	InstructorImageURL *string
	LearningPoints     *[]string
	Requirements       *[]string
	Status             *WorkshopStatus
}

// Apply overwrites w field by field with the values set on p.
func (p WorkshopPatch) Apply(w *Workshop) {
	setIf(&w.Title, p.Title)
	setIf(&w.Description, p.Description)
	setIf(&w.Summary, p.Summary)
	setIf(&w.ImageURL, p.ImageURL)
	setIf(&w.Category, p.Category)
	setIf(&w.Date, p.Date)
	setIf(&w.StartTime, p.StartTime)
	setIf(&w.EndTime, p.EndTime)
	setIf(&w.Location, p.Location)
	setIf(&w.Capacity, p.Capacity)
	setIf(&w.Instructor, p.Instructor)
	setIf(&w.InstructorTitle, p.InstructorTitle)
	setIf(&w.InstructorBio, p.InstructorBio)
	setIf(&w.InstructorImageURL, p.InstructorImageURL)
	if p.LearningPoints != nil {
		w.LearningPoints = slices.Clone(*p.LearningPoints)
	}
	if p.Requirements != nil {
		w.Requirements = slices.Clone(*p.Requirements)
	}
	setIf(&w.Status, p.Status)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

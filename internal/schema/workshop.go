package schema

import (
	"time"

	"github.com/spec-kit/workshop-service/internal/domain"
)

// ParseWorkshop validates a full workshop payload. Status defaults to
// upcoming and the id, if sent, is ignored.
func ParseWorkshop(body []byte) (domain.Workshop, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return domain.Workshop{}, err
	}
	patch := readWorkshopFields(obj, true)
	if err := obj.violations.orNil(); err != nil {
		return domain.Workshop{}, err
	}

	workshop := domain.Workshop{
		Status:         domain.WorkshopStatusUpcoming,
		LearningPoints: []string{},
		Requirements:   []string{},
	}
	patch.Apply(&workshop)
	return workshop, nil
}

// ParseWorkshopPatch validates a partial workshop payload. Only the fields
// present in the body are set on the returned patch.
func ParseWorkshopPatch(body []byte) (domain.WorkshopPatch, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return domain.WorkshopPatch{}, err
	}
	patch := readWorkshopFields(obj, false)
	if err := obj.violations.orNil(); err != nil {
		return domain.WorkshopPatch{}, err
	}
	return patch, nil
}

func readWorkshopFields(o *object, required bool) domain.WorkshopPatch {
	var p domain.WorkshopPatch

	p.Title = strField(o, "title", required)
	p.Description = strField(o, "description", required)
	p.Summary = strField(o, "summary", required)
	p.ImageURL = strField(o, "imageUrl", required)

	if s, ok := o.text("category", required); ok {
		category := domain.Category(s)
		if category.Valid() {
			p.Category = &category
		} else {
			o.fail("category", "Invalid enum value. Expected 'Technology' | 'Design' | 'Business' | 'Marketing' | 'Personal Development'")
		}
	}

	if t, ok := o.date("date", required); ok {
		p.Date = &t
	}

	p.StartTime = strField(o, "startTime", required)
	p.EndTime = strField(o, "endTime", required)
	p.Location = strField(o, "location", required)

	if n, ok := o.integer("capacity", required, 0); ok {
		p.Capacity = &n
	}

	p.Instructor = strField(o, "instructor", required)
	p.InstructorTitle = strField(o, "instructorTitle", required)
	p.InstructorBio = strField(o, "instructorBio", required)
	p.InstructorImageURL = strField(o, "instructorImageUrl", required)

	if list, ok := o.stringList("learningPoints"); ok {
		p.LearningPoints = &list
	}
	if list, ok := o.stringList("requirements"); ok {
		p.Requirements = &list
	}

	if s, ok := o.str("status", false); ok {
		status := domain.WorkshopStatus(s)
		if status.Valid() {
			p.Status = &status
		} else {
			o.fail("status", "Invalid enum value. Expected 'upcoming' | 'past' | 'draft'")
		}
	}
	return p
}

func strField(o *object, field string, required bool) *string {
	s, ok := o.text(field, required)
	if !ok {
		return nil
	}
	return &s
}

// ParseDate accepts RFC 3339 timestamps or calendar dates.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

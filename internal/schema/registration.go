package schema

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/workshop-service/internal/domain"
)

var validate = validator.New()

// ParseRegistration validates a registration payload. The id and
// registeredAt fields are server-assigned and ignored if sent.
func ParseRegistration(body []byte) (domain.Registration, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return domain.Registration{}, err
	}

	var reg domain.Registration
	reg.WorkshopID, _ = obj.integer("workshopId", true, 1)
	reg.FirstName, _ = obj.text("firstName", true)
	reg.LastName, _ = obj.text("lastName", true)

	if email, ok := obj.text("email", true); ok {
		email = strings.TrimSpace(email)
		if validate.Var(email, "email") != nil {
			obj.fail("email", "Invalid email")
		}
		reg.Email = email
	}

	reg.Phone = obj.optionalStr("phone")
	reg.Occupation, _ = obj.text("occupation", true)

	if s, ok := obj.text("experienceLevel", true); ok {
		level := domain.ExperienceLevel(s)
		if !level.Valid() {
			obj.fail("experienceLevel", "Invalid enum value. Expected 'beginner' | 'intermediate' | 'advanced'")
		}
		reg.ExperienceLevel = level
	}

	reg.Expectations = obj.optionalStr("expectations")

	if err := obj.violations.orNil(); err != nil {
		return domain.Registration{}, err
	}
	return reg, nil
}

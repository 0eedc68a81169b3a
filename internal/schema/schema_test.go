package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workshop-service/internal/domain"
)

func validWorkshopBody() map[string]any {
	return map[string]any{
		"title":              "Intro to Go",
		"description":        "A long description",
		"summary":            "Short summary",
		"imageUrl":           "https://example.com/go.png",
		"category":           "Technology",
		"date":               "2024-07-01",
		"startTime":          "10:00 AM",
		"endTime":            "12:00 PM",
		"location":           "Online",
		"capacity":           30,
		"instructor":         "Rob",
		"instructorTitle":    "Engineer",
		"instructorBio":      "Writes Go.",
		"instructorImageUrl": "https://example.com/rob.png",
		"learningPoints":     []string{"goroutines", "channels"},
	}
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func violationsOf(t *testing.T, err error) Violations {
	t.Helper()
	require.Error(t, err)
	v, ok := err.(Violations)
	require.True(t, ok, "expected Violations, got %T", err)
	return v
}

func TestParseWorkshopDefaultsStatus(t *testing.T) {
	w, err := ParseWorkshop(encode(t, validWorkshopBody()))
	require.NoError(t, err)

	assert.Equal(t, domain.WorkshopStatusUpcoming, w.Status)
	assert.Equal(t, 30, w.Capacity)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), w.Date)
	assert.Equal(t, []string{"goroutines", "channels"}, w.LearningPoints)
	assert.NotNil(t, w.Requirements)
	assert.Empty(t, w.Requirements)
	assert.Zero(t, w.ID)
}

func TestParseWorkshopIgnoresClientID(t *testing.T) {
	body := validWorkshopBody()
	body["id"] = 99
	w, err := ParseWorkshop(encode(t, body))
	require.NoError(t, err)
	assert.Zero(t, w.ID)
}

func TestParseWorkshopReportsEveryViolation(t *testing.T) {
	body := validWorkshopBody()
	delete(body, "title")
	body["category"] = "Cooking"
	body["capacity"] = "abc"
	body["status"] = "archived"

	v := violationsOf(t, mustFail(ParseWorkshop(encode(t, body))))
	assert.ElementsMatch(t, []string{"title", "category", "capacity", "status"}, v.Fields())
}

func TestParseWorkshopRejectsFractionalCapacity(t *testing.T) {
	body := validWorkshopBody()
	body["capacity"] = 2.5
	v := violationsOf(t, mustFail(ParseWorkshop(encode(t, body))))
	assert.Equal(t, []string{"capacity"}, v.Fields())
}

func TestParseWorkshopRejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `null`, `"x"`, `{`} {
		_, err := ParseWorkshop([]byte(body))
		v := violationsOf(t, err)
		assert.Equal(t, []string{"body"}, v.Fields(), body)
	}
}

func TestParseWorkshopPatchOnlySetsPresentFields(t *testing.T) {
	patch, err := ParseWorkshopPatch([]byte(`{"capacity": 12, "status": "past"}`))
	require.NoError(t, err)

	require.NotNil(t, patch.Capacity)
	assert.Equal(t, 12, *patch.Capacity)
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.WorkshopStatusPast, *patch.Status)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Date)
}

func TestParseWorkshopPatchWrongType(t *testing.T) {
	_, err := ParseWorkshopPatch([]byte(`{"capacity": "abc"}`))
	v := violationsOf(t, err)
	require.Len(t, v, 1)
	assert.Equal(t, "capacity", v[0].Field)
	assert.Equal(t, "Expected number", v[0].Message)
}

func TestParseWorkshopPatchEmptyObject(t *testing.T) {
	patch, err := ParseWorkshopPatch([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, domain.WorkshopPatch{}, patch)
}

func TestParseRegistration(t *testing.T) {
	reg, err := ParseRegistration([]byte(`{
		"workshopId": 1,
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"occupation": "Analyst",
		"experienceLevel": "advanced",
		"expectations": "Engines"
	}`))
	require.NoError(t, err)

	assert.Equal(t, 1, reg.WorkshopID)
	assert.Equal(t, domain.ExperienceAdvanced, reg.ExperienceLevel)
	assert.Nil(t, reg.Phone)
	require.NotNil(t, reg.Expectations)
	assert.Equal(t, "Engines", *reg.Expectations)
	assert.True(t, reg.RegisteredAt.IsZero())
}

func TestParseRegistrationViolations(t *testing.T) {
	_, err := ParseRegistration([]byte(`{
		"workshopId": "one",
		"firstName": "Ada",
		"email": "not-an-email",
		"occupation": "Analyst",
		"experienceLevel": "expert",
		"phone": 5
	}`))
	v := violationsOf(t, err)
	assert.ElementsMatch(t, []string{"workshopId", "lastName", "email", "experienceLevel", "phone"}, v.Fields())
}

func TestParseCredentials(t *testing.T) {
	creds, err := ParseCredentials([]byte(`{"username":"admin","password":"secret"}`))
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "admin", Password: "secret"}, creds)

	_, err = ParseCredentials([]byte(`{"username":"  "}`))
	v := violationsOf(t, err)
	assert.Equal(t, []string{"username", "password"}, v.Fields())
}

func mustFail[T any](_ T, err error) error {
	return err
}

func TestParseWorkshopListsDefaultToEmpty(t *testing.T) {
	body := validWorkshopBody()
	delete(body, "learningPoints")
	w, err := ParseWorkshop(encode(t, body))
	require.NoError(t, err)

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"learningPoints":[]`)
	assert.Contains(t, string(out), `"requirements":[]`)
}

func TestParseWorkshopPatchRejectsBlankStrings(t *testing.T) {
	_, err := ParseWorkshopPatch([]byte(`{"imageUrl": "", "title": "   ", "location": "Room 2"}`))
	v := violationsOf(t, err)
	assert.ElementsMatch(t, []string{"imageUrl", "title"}, v.Fields())
	for _, item := range v {
		assert.Equal(t, "Must not be empty", item.Message)
	}
}

func TestParseWorkshopCapacityBounds(t *testing.T) {
	patch, err := ParseWorkshopPatch([]byte(`{"capacity": 0}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Capacity)
	assert.Zero(t, *patch.Capacity)

	_, err = ParseWorkshopPatch([]byte(`{"capacity": -1}`))
	v := violationsOf(t, err)
	require.Len(t, v, 1)
	assert.Equal(t, "capacity", v[0].Field)
	assert.Equal(t, "Must be at least 0", v[0].Message)
}

func TestOptionalRegistrationFieldsMayBeBlank(t *testing.T) {
	reg, err := ParseRegistration([]byte(`{
		"workshopId": 1,
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"phone": "",
		"occupation": "Analyst",
		"experienceLevel": "beginner"
	}`))
	require.NoError(t, err)
	require.NotNil(t, reg.Phone)
	assert.Empty(t, *reg.Phone)
}

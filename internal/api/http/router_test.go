package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/workshop-service/internal/api/http"
	"github.com/spec-kit/workshop-service/internal/api/http/handlers"
	"github.com/spec-kit/workshop-service/internal/auth"
	"github.com/spec-kit/workshop-service/internal/capacity"
	"github.com/spec-kit/workshop-service/internal/config"
	"github.com/spec-kit/workshop-service/internal/events"
	"github.com/spec-kit/workshop-service/internal/observability"
	"github.com/spec-kit/workshop-service/internal/repository"
	"github.com/spec-kit/workshop-service/internal/service"
)

type testServer struct {
	app   *fiber.App
	store *repository.MemoryStore
}

func newTestServer(t *testing.T, seed, requireAdmin bool) *testServer {
	t.Helper()
	store := repository.NewMemoryStore()
	if seed {
		_, err := repository.SeedSampleWorkshops(context.Background(), store)
		require.NoError(t, err)
	}

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, nil, logger).RegisterHandlers()

	workshops := service.NewWorkshopService(service.WorkshopDependencies{
		WorkshopRepo:     store,
		RegistrationRepo: store,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	registrations := service.NewRegistrationService(service.RegistrationDependencies{
		WorkshopRepo:     store,
		RegistrationRepo: store,
		Guard:            capacity.NewLocalGuard(),
		Dispatcher:       dispatcher,
		Recorder:         metrics,
		Logger:           logger,
	})
	authService := service.NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4}, store, logger)
	if requireAdmin {
		require.NoError(t, authService.BootstrapAdmin(context.Background(), "admin", "secret"))
	}

	app := httptransport.NewApp(httptransport.ServerConfig{AppName: "workshop-service"}, logger, metrics, httptransport.RouteConfig{
		Prefix:         "/api",
		Health:         handlers.NewHealthHandler("workshop-service", "test", nil, nil),
		Workshops:      handlers.NewWorkshopsHandler(workshops),
		Registrations:  handlers.NewRegistrationsHandler(registrations),
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), store),
		RequireAdmin:   requireAdmin,
	})
	return &testServer{app: app, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, data []byte) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func workshopBody(capacity any) map[string]any {
	return map[string]any{
		"title":              "Intro to Go",
		"description":        "A practical introduction to Go.",
		"summary":            "Go basics",
		"imageUrl":           "https://example.com/go.png",
		"category":           "Technology",
		"date":               "2024-09-01",
		"startTime":          "10:00",
		"endTime":            "12:00",
		"location":           "Room 1",
		"capacity":           capacity,
		"instructor":         "Rob",
		"instructorTitle":    "Engineer",
		"instructorBio":      "Writes Go.",
		"instructorImageUrl": "https://example.com/rob.png",
		"learningPoints":     []string{"goroutines"},
		"requirements":       []string{},
	}
}

func registrationBody(workshopID int, email string) map[string]any {
	return map[string]any{
		"workshopId":      workshopID,
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"email":           email,
		"occupation":      "Engineer",
		"experienceLevel": "beginner",
	}
}

func TestListSeededWorkshops(t *testing.T) {
	s := newTestServer(t, true, false)

	resp, data := s.do(t, http.MethodGet, "/api/workshops", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Introduction to Web Development", list[0]["title"])
	assert.Equal(t, "UX Design Fundamentals", list[1]["title"])
	assert.Equal(t, "Digital Marketing Strategies", list[2]["title"])
	assert.EqualValues(t, 1, list[0]["id"])

	resp, data = s.do(t, http.MethodGet, "/api/workshops?status=draft", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Digital Marketing Strategies", list[0]["title"])

	resp, data = s.do(t, http.MethodGet, "/api/workshops?category=Cooking", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(data))
}

func TestRegistrationUntilFull(t *testing.T) {
	s := newTestServer(t, false, false)

	resp, data := s.do(t, http.MethodPost, "/api/workshops", workshopBody(1))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var created map[string]any
	require.NoError(t, json.Unmarshal(data, &created))
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "upcoming", created["status"])

	resp, data = s.do(t, http.MethodPost, "/api/registrations", registrationBody(1, "ada@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var reg map[string]any
	require.NoError(t, json.Unmarshal(data, &reg))
	assert.EqualValues(t, 1, reg["id"])
	assert.NotEmpty(t, reg["registeredAt"])

	resp, data = s.do(t, http.MethodPost, "/api/registrations", registrationBody(1, "grace@example.com"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Workshop is at full capacity", decodeError(t, data).Error.Message)

	resp, data = s.do(t, http.MethodGet, "/api/workshops/1/registration-count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"count":1}`, string(data))

	resp, data = s.do(t, http.MethodGet, "/api/workshops/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(data, &detail))
	assert.EqualValues(t, 1, detail["registrationCount"])
	assert.Equal(t, "Intro to Go", detail["title"])

	resp, data = s.do(t, http.MethodGet, "/api/workshops/1/registrations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var regs []map[string]any
	require.NoError(t, json.Unmarshal(data, &regs))
	require.Len(t, regs, 1)
	assert.Equal(t, "ada@example.com", regs[0]["email"])
}

func TestRegistrationForMissingWorkshop(t *testing.T) {
	s := newTestServer(t, false, false)

	resp, data := s.do(t, http.MethodPost, "/api/registrations", registrationBody(42, "ada@example.com"))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Workshop not found", decodeError(t, data).Error.Message)
}

func TestRegistrationValidation(t *testing.T) {
	s := newTestServer(t, true, false)

	body := registrationBody(1, "not-an-email")
	body["experienceLevel"] = "expert"
	resp, data := s.do(t, http.MethodPost, "/api/registrations", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	e := decodeError(t, data)
	assert.Equal(t, "VALIDATION_FAILED", e.Error.Code)
	assert.Equal(t, "Invalid registration data", e.Error.Message)
	fields, ok := e.Error.Details["fields"].([]any)
	require.True(t, ok)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"email", "experienceLevel"}, names)

	count, err := s.store.GetRegistrationCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetMissingWorkshop(t *testing.T) {
	s := newTestServer(t, true, false)

	resp, data := s.do(t, http.MethodGet, "/api/workshops/999", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	e := decodeError(t, data)
	assert.Equal(t, "NOT_FOUND", e.Error.Code)
	assert.Equal(t, "Workshop not found", e.Error.Message)
}

func TestNonNumericIDIsRejected(t *testing.T) {
	s := newTestServer(t, true, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/workshops/abc"},
		{http.MethodPut, "/api/workshops/abc"},
		{http.MethodDelete, "/api/workshops/abc"},
		{http.MethodGet, "/api/workshops/abc/registrations"},
		{http.MethodGet, "/api/workshops/abc/registration-count"},
	} {
		resp, data := s.do(t, tc.method, tc.path, `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.path)
		assert.Equal(t, "Invalid workshop ID", decodeError(t, data).Error.Message, tc.path)
	}
}

func TestUpdateWorkshop(t *testing.T) {
	s := newTestServer(t, true, false)

	resp, data := s.do(t, http.MethodPut, "/api/workshops/1", map[string]any{"capacity": "abc"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, data)
	assert.Equal(t, "Invalid workshop data", e.Error.Message)
	assert.Contains(t, string(data), `"field":"capacity"`)

	resp, data = s.do(t, http.MethodPut, "/api/workshops/1", map[string]any{"capacity": 75, "status": "past"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var updated map[string]any
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.EqualValues(t, 75, updated["capacity"])
	assert.Equal(t, "past", updated["status"])
	assert.Equal(t, "Introduction to Web Development", updated["title"])

	resp, _ = s.do(t, http.MethodPut, "/api/workshops/999", map[string]any{"capacity": 5})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateWorkshopValidation(t *testing.T) {
	s := newTestServer(t, false, false)

	resp, data := s.do(t, http.MethodPost, "/api/workshops", `{"title":"Only a title"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), `"field":"capacity"`)

	resp, _ = s.do(t, http.MethodPost, "/api/workshops", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = s.do(t, http.MethodGet, "/api/workshops", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(data))
}

func TestDeleteWorkshop(t *testing.T) {
	s := newTestServer(t, true, false)

	resp, data := s.do(t, http.MethodDelete, "/api/workshops/2", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, data)

	resp, _ = s.do(t, http.MethodDelete, "/api/workshops/2", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/workshops/2/registrations", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = s.do(t, http.MethodGet, "/api/workshops/2/registration-count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"count":0}`, string(data))

	resp, data = s.do(t, http.MethodPost, "/api/workshops", workshopBody(10))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	require.NoError(t, json.Unmarshal(data, &created))
	assert.EqualValues(t, 4, created["id"], "ids are never reused")
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	resp, data := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": username, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestAdminProtection(t *testing.T) {
	s := newTestServer(t, true, true)

	resp, _ := s.do(t, http.MethodPost, "/api/workshops", workshopBody(5))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/workshops", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token := s.login(t, "admin", "secret")

	resp, data := s.do(t, http.MethodPost, "/api/workshops", workshopBody(5), "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, _ = s.do(t, http.MethodDelete, "/api/workshops/1", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSelfRegisteredUserIsNotAdmin(t *testing.T) {
	s := newTestServer(t, true, true)

	creds := map[string]any{"username": "mallory", "password": "secret"}
	resp, data := s.do(t, http.MethodPost, "/api/auth/register", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"admin":false`)

	token := s.login(t, "mallory", "secret")
	bearer := "Bearer " + token

	resp, data = s.do(t, http.MethodDelete, "/api/workshops/1", nil, "Authorization", bearer)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, data).Error.Code)

	resp, _ = s.do(t, http.MethodPut, "/api/workshops/1", map[string]any{"capacity": 1}, "Authorization", bearer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = s.do(t, http.MethodPost, "/api/workshops", workshopBody(5), "Authorization", bearer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, "/api/workshops/1/registrations", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/workshops/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "workshop survives")
}

func TestPatchRulesMatchCreate(t *testing.T) {
	s := newTestServer(t, true, false)

	resp, data := s.do(t, http.MethodPut, "/api/workshops/1", map[string]any{"imageUrl": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), `"field":"imageUrl"`)

	resp, data = s.do(t, http.MethodPut, "/api/workshops/1", map[string]any{"capacity": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, data = s.do(t, http.MethodPost, "/api/registrations", registrationBody(1, "ada@example.com"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Workshop is at full capacity", decodeError(t, data).Error.Message)
}

func TestCreatedWorkshopListsAreArrays(t *testing.T) {
	s := newTestServer(t, false, false)

	body := workshopBody(5)
	delete(body, "learningPoints")
	delete(body, "requirements")
	resp, data := s.do(t, http.MethodPost, "/api/workshops", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	assert.Contains(t, string(data), `"learningPoints":[]`)
	assert.Contains(t, string(data), `"requirements":[]`)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, true, false)

	resp, data := s.do(t, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"postgres":"disabled"`)

	resp, _ = s.do(t, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	s.do(t, http.MethodPost, "/api/registrations", registrationBody(1, "ada@example.com"))

	resp, data = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `workshop_registrations_total{outcome="created"} 1`)
	assert.Contains(t, string(data), "http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, false, false)

	resp, data := s.do(t, http.MethodGet, "/api/nothing-here", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, data).Error.Code)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/api/http/handlers"
	"github.com/spec-kit/au-connect/internal/config"
	"github.com/spec-kit/au-connect/internal/events"
	"github.com/spec-kit/au-connect/internal/observability"
	"github.com/spec-kit/au-connect/internal/repository/memory"
	"github.com/spec-kit/au-connect/internal/service"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.New().Repositories()
	metrics := observability.NewMetrics("test")
	deps := service.LedgerDependencies{
		Store:      store,
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    metrics,
		Logger:     zap.NewNop(),
	}
	svc := service.NewServices(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 60, BcryptCost: 4}, deps)
	health := handlers.NewHealthHandler("au-connect", "test", handlers.Dependency{Name: "store", Ping: store.Ping})
	app := NewApp("au-connect", zap.NewNop(), 5*time.Second, NewRouteConfig(svc, health, metrics))
	return &testServer{t: t, app: app}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type session struct {
	ID    string
	Token string
}

func (s *testServer) signUp(role string) session {
	s.t.Helper()
	email := gofakeit.Email()
	status, env := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": gofakeit.Name(), "email": email, "password": "secret123", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, status, env.Message)

	status, env = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, status, env.Message)
	auth := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}](s.t, env)
	return session{ID: auth.User.ID, Token: auth.Token}
}

type clubBody struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount *int   `json:"memberCount"`
	IsMember    *bool  `json:"isMember"`
}

func TestChessScenario(t *testing.T) {
	s := newTestServer(t)
	admin := s.signUp("admin")
	student := s.signUp("student")

	status, env := s.do(http.MethodPost, "/clubs", admin.Token, map[string]string{"name": "Chess", "description": "Board games"})
	require.Equal(t, http.StatusCreated, status, env.Message)
	club := decode[clubBody](t, env)

	status, env = s.do(http.MethodPost, "/memberships", student.Token, map[string]string{
		"userId": student.ID, "clubId": club.ID, "studentName": "Sam", "reason": "fun",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, env = s.do(http.MethodGet, "/clubs/"+club.ID, student.Token, nil)
	require.Equal(t, http.StatusOK, status)
	detail := decode[clubBody](t, env)
	require.NotNil(t, detail.MemberCount)
	assert.Equal(t, 1, *detail.MemberCount)
	assert.True(t, *detail.IsMember)

	status, env = s.do(http.MethodPost, "/memberships", student.Token, map[string]string{"userId": student.ID, "clubId": club.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CONFLICT", env.Code)
	assert.Equal(t, "Already joined", env.Message)

	status, _ = s.do(http.MethodDelete, "/clubs/"+club.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodGet, "/memberships", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]json.RawMessage](t, env))

	status, env = s.do(http.MethodGet, "/clubs/"+club.ID, student.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestMembershipValidationAndLeave(t *testing.T) {
	s := newTestServer(t)
	admin := s.signUp("admin")
	student := s.signUp("student")

	_, env := s.do(http.MethodPost, "/clubs", admin.Token, map[string]string{"name": "Go"})
	club := decode[clubBody](t, env)

	status, env := s.do(http.MethodPost, "/memberships", student.Token, map[string]string{"clubId": club.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)

	status, _ = s.do(http.MethodPost, "/memberships", student.Token, map[string]string{"userId": student.ID, "clubId": club.ID})
	require.Equal(t, http.StatusCreated, status)

	leave := map[string]string{"userId": student.ID, "clubId": club.ID}
	status, _ = s.do(http.MethodDelete, "/memberships", student.Token, leave)
	assert.Equal(t, http.StatusOK, status)
	status, env = s.do(http.MethodDelete, "/memberships", student.Token, leave)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestStudentCannotActForOthers(t *testing.T) {
	s := newTestServer(t)
	admin := s.signUp("admin")
	alice := s.signUp("student")
	bob := s.signUp("student")

	_, env := s.do(http.MethodPost, "/clubs", admin.Token, map[string]string{"name": "Chess"})
	club := decode[clubBody](t, env)

	status, env := s.do(http.MethodPost, "/memberships", alice.Token, map[string]string{"userId": bob.ID, "clubId": club.ID})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Code)

	status, _ = s.do(http.MethodPost, "/memberships", admin.Token, map[string]string{"userId": bob.ID, "clubId": club.ID})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = s.do(http.MethodPost, "/clubs", alice.Token, map[string]string{"name": "Rogue"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(http.MethodGet, "/users/"+bob.ID, alice.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestEventRegistrationFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.signUp("admin")
	student := s.signUp("student")

	status, env := s.do(http.MethodPost, "/events", admin.Token, map[string]any{
		"title": "Open night", "date": "2024-05-01T18:00:00Z", "clubId": "club-1", "keywords": []string{"chess"},
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	event := decode[struct {
		ID string `json:"id"`
	}](t, env)

	reg := map[string]string{"userId": student.ID, "eventId": event.ID}
	status, _ = s.do(http.MethodPost, "/registrations", student.Token, reg)
	require.Equal(t, http.StatusCreated, status)
	status, env = s.do(http.MethodPost, "/registrations", student.Token, reg)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CONFLICT", env.Code)

	status, env = s.do(http.MethodGet, "/events/"+event.ID, student.Token, nil)
	require.Equal(t, http.StatusOK, status)
	detail := decode[struct {
		RegistrationCount int  `json:"registrationCount"`
		IsRegistered      bool `json:"isRegistered"`
	}](t, env)
	assert.Equal(t, 1, detail.RegistrationCount)
	assert.True(t, detail.IsRegistered)

	status, _ = s.do(http.MethodDelete, "/events/"+event.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodGet, "/registrations", student.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]json.RawMessage](t, env))

	status, env = s.do(http.MethodPost, "/events", admin.Token, map[string]any{"title": "Bad", "date": "someday", "clubId": "c"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)
}

func TestAuthErrors(t *testing.T) {
	s := newTestServer(t)
	s.signUp("student")

	status, env := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", env.Code)

	status, _ = s.do(http.MethodGet, "/clubs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = s.do(http.MethodPost, "/auth/register", "", map[string]string{"name": "A", "email": "x", "password": "1", "role": "staff"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)
}

func TestDashboardAndOverview(t *testing.T) {
	s := newTestServer(t)
	admin := s.signUp("admin")
	student := s.signUp("student")

	_, env := s.do(http.MethodPost, "/clubs", admin.Token, map[string]string{"name": "Chess"})
	chess := decode[clubBody](t, env)
	s.do(http.MethodPost, "/clubs", admin.Token, map[string]string{"name": "Go"})
	s.do(http.MethodPost, "/memberships", student.Token, map[string]string{"userId": student.ID, "clubId": chess.ID})

	status, env := s.do(http.MethodGet, "/dashboard", student.Token, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	dash := decode[struct {
		JoinedClubs    []clubBody `json:"joinedClubs"`
		AvailableClubs []clubBody `json:"availableClubs"`
	}](t, env)
	require.Len(t, dash.JoinedClubs, 1)
	assert.Equal(t, "Chess", dash.JoinedClubs[0].Name)
	require.Len(t, dash.AvailableClubs, 1)
	assert.Equal(t, "Go", dash.AvailableClubs[0].Name)

	status, _ = s.do(http.MethodGet, "/admin/overview", student.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodGet, "/admin/overview", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	overview := decode[struct {
		TotalClubs   int `json:"totalClubs"`
		TotalMembers int `json:"totalMembers"`
	}](t, env)
	assert.Equal(t, 2, overview.TotalClubs)
	assert.Equal(t, 1, overview.TotalMembers)
}

func TestProfileUpdate(t *testing.T) {
	s := newTestServer(t)
	student := s.signUp("student")

	status, env := s.do(http.MethodPut, "/users/update", student.Token, map[string]any{
		"userId": student.ID, "major": "CS", "interests": []string{"chess", "chess", "go"},
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	user := decode[struct {
		Major     string   `json:"major"`
		Interests []string `json:"interests"`
	}](t, env)
	assert.Equal(t, "CS", user.Major)
	assert.Equal(t, []string{"chess", "go"}, user.Interests)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "test_http_requests_total")
}

func TestReadinessFailsOnStoreError(t *testing.T) {
	store := memory.New()
	health := handlers.NewHealthHandler("au-connect", "test", handlers.Dependency{
		Name: "store",
		Ping: func(ctx context.Context) error { return context.DeadlineExceeded },
	}, handlers.Dependency{Name: "cache", Ping: store.Ping, Optional: true})

	app := fiber.New()
	app.Get("/ready", health.Ready)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAdminRemovesMember(t *testing.T) {
	s := newTestServer(t)
	admin := s.signUp("admin")
	student := s.signUp("student")

	_, env := s.do(http.MethodPost, "/clubs", admin.Token, map[string]string{"name": "Chess"})
	club := decode[clubBody](t, env)
	_, env = s.do(http.MethodPost, "/memberships", student.Token, map[string]string{"userId": student.ID, "clubId": club.ID})
	membership := decode[struct {
		ID string `json:"id"`
	}](t, env)

	status, _ := s.do(http.MethodGet, "/clubs/"+club.ID+"/members", student.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodGet, "/clubs/"+club.ID+"/members", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]json.RawMessage](t, env), 1)

	status, _ = s.do(http.MethodDelete, "/memberships/"+membership.ID, student.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(http.MethodDelete, "/memberships/"+membership.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	status, env = s.do(http.MethodDelete, "/memberships/"+membership.ID, admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)

	status, env = s.do(http.MethodGet, "/clubs/"+club.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, *decode[clubBody](t, env).MemberCount)
}

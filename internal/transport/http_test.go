package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/domain/board"
	"github.com/mlevin/applytrack/internal/domain/user"
	"github.com/mlevin/applytrack/internal/sqlite"
)

// newTestAPI wires the full stack over an in-memory database.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userSvc := user.NewService(sqlite.NewUserRepository(db), "test-secret", time.Hour, logger)
	boardSvc := board.NewService(sqlite.NewBoardStore(db), logger)
	appSvc := application.NewService(sqlite.NewApplicationRepository(db), boardSvc, logger)

	return NewServer(userSvc, appSvc, boardSvc, logger)
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func signUp(t *testing.T, handler http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[map[string]string](t, rec)["token"]
}

func createApp(t *testing.T, handler http.Handler, token, company string, status application.Status) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/applications", token, map[string]string{
		"company_name": company,
		"job_title":    "Engineer",
		"status":       string(status),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[application.Application](t, rec).ID
}

func listApps(t *testing.T, handler http.Handler, token string) []application.Application {
	t.Helper()
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/applications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody[[]application.Application](t, rec)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	token := signUp(t, api, "dev@example.com")
	require.NotEmpty(t, token)

	// Duplicate signup is rejected.
	rec := doJSON(t, api, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "dev@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Login round-trips.
	rec = doJSON(t, api, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "dev@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decodeBody[map[string]string](t, rec)["token"])

	rec = doJSON(t, api, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "dev@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Application routes require a token.
	rec = doJSON(t, api, http.MethodGet, "/api/v1/applications", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAppendsAtEnd(t *testing.T) {
	api := newTestAPI(t)
	token := signUp(t, api, "dev@example.com")

	createApp(t, api, token, "Initech", application.StatusApplied)
	createApp(t, api, token, "Globex", application.StatusApplied)
	createApp(t, api, token, "Hooli", application.StatusOffer)

	apps := listApps(t, api, token)
	require.Len(t, apps, 3)
	// Applied column first, positions dense per column.
	require.Equal(t, "Initech", apps[0].CompanyName)
	require.Equal(t, 0, apps[0].Position)
	require.Equal(t, "Globex", apps[1].CompanyName)
	require.Equal(t, 1, apps[1].Position)
	require.Equal(t, "Hooli", apps[2].CompanyName)
	require.Equal(t, 0, apps[2].Position)
}

func TestReorderWithinColumn(t *testing.T) {
	api := newTestAPI(t)
	token := signUp(t, api, "dev@example.com")

	first := createApp(t, api, token, "Initech", application.StatusApplied)
	createApp(t, api, token, "Globex", application.StatusApplied)
	createApp(t, api, token, "Hooli", application.StatusApplied)

	rec := doJSON(t, api, http.MethodPatch, "/api/v1/applications/reorder", token, map[string]any{
		"applicationId": first,
		"newStatus":     "Applied",
		"newIndex":      2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Order updated successfully", decodeBody[map[string]string](t, rec)["message"])

	apps := listApps(t, api, token)
	require.Equal(t, []string{"Globex", "Hooli", "Initech"}, companies(apps))
	require.Equal(t, []int{0, 1, 2}, positions(apps))
}

func TestReorderAcrossColumns(t *testing.T) {
	api := newTestAPI(t)
	token := signUp(t, api, "dev@example.com")

	createApp(t, api, token, "Initech", application.StatusApplied)
	second := createApp(t, api, token, "Globex", application.StatusApplied)
	createApp(t, api, token, "Umbrella", application.StatusInterviewing)

	rec := doJSON(t, api, http.MethodPatch, "/api/v1/applications/reorder", token, map[string]any{
		"applicationId": second,
		"newStatus":     "Interviewing",
		"newIndex":      0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	apps := listApps(t, api, token)
	require.Len(t, apps, 3)
	byCompany := make(map[string]application.Application)
	for _, app := range apps {
		byCompany[app.CompanyName] = app
	}
	require.Equal(t, application.StatusApplied, byCompany["Initech"].Status)
	require.Equal(t, 0, byCompany["Initech"].Position)
	require.Equal(t, application.StatusInterviewing, byCompany["Globex"].Status)
	require.Equal(t, 0, byCompany["Globex"].Position)
	require.Equal(t, application.StatusInterviewing, byCompany["Umbrella"].Status)
	require.Equal(t, 1, byCompany["Umbrella"].Position)
}

func TestReorderValidation(t *testing.T) {
	api := newTestAPI(t)
	token := signUp(t, api, "dev@example.com")
	id := createApp(t, api, token, "Initech", application.StatusApplied)

	// Each required field absent in turn.
	for _, body := range []map[string]any{
		{"newStatus": "Applied", "newIndex": 0},
		{"applicationId": id, "newIndex": 0},
		{"applicationId": id, "newStatus": "Applied"},
		{"applicationId": id, "newStatus": nil, "newIndex": 0},
	} {
		rec := doJSON(t, api, http.MethodPatch, "/api/v1/applications/reorder", token, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %v", body)
	}

	rec := doJSON(t, api, http.MethodPatch, "/api/v1/applications/reorder", token, map[string]any{
		"applicationId": id, "newStatus": "Ghosted", "newIndex": 0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, api, http.MethodPatch, "/api/v1/applications/reorder", token, map[string]any{
		"applicationId": id, "newStatus": "Applied", "newIndex": 5,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReorderForeignApplicationIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	owner := signUp(t, api, "owner@example.com")
	intruder := signUp(t, api, "intruder@example.com")

	id := createApp(t, api, owner, "Initech", application.StatusApplied)

	rec := doJSON(t, api, http.MethodPatch, "/api/v1/applications/reorder", intruder, map[string]any{
		"applicationId": id,
		"newStatus":     "Offer",
		"newIndex":      0,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The owner's board is untouched.
	apps := listApps(t, api, owner)
	require.Len(t, apps, 1)
	require.Equal(t, application.StatusApplied, apps[0].Status)
	require.Equal(t, 0, apps[0].Position)
}

func TestUpdateAndDelete(t *testing.T) {
	api := newTestAPI(t)
	token := signUp(t, api, "dev@example.com")

	createApp(t, api, token, "Initech", application.StatusApplied)
	target := createApp(t, api, token, "Globex", application.StatusApplied)
	createApp(t, api, token, "Hooli", application.StatusApplied)

	rec := doJSON(t, api, http.MethodPut, "/api/v1/applications/"+target, token, map[string]string{
		"job_title": "Staff Engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Staff Engineer", decodeBody[application.Application](t, rec).JobTitle)

	rec = doJSON(t, api, http.MethodDelete, "/api/v1/applications/"+target, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The column compacted around the deleted record.
	apps := listApps(t, api, token)
	require.Equal(t, []string{"Initech", "Hooli"}, companies(apps))
	require.Equal(t, []int{0, 1}, positions(apps))

	rec = doJSON(t, api, http.MethodDelete, "/api/v1/applications/"+target, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rec := doJSON(t, api, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func companies(apps []application.Application) []string {
	out := make([]string, len(apps))
	for i, app := range apps {
		out[i] = app.CompanyName
	}
	return out
}

func positions(apps []application.Application) []int {
	out := make([]int, len(apps))
	for i, app := range apps {
		out[i] = app.Position
	}
	return out
}

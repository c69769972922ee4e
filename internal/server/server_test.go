package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/config"
	"github.com/Mitrevichin/Job-Tracking-App/internal/database"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	jobservice "github.com/Mitrevichin/Job-Tracking-App/internal/service/job"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store/postgres"
	"github.com/Mitrevichin/Job-Tracking-App/internal/testutil"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

const frontend = "http://frontend.test"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Auth.Secret = "server-secret"
	cfg.Server.AllowOrigins = []string{frontend}
	cfg.Server.RateLimitPerSecond = 1000

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	blacklist := auth.NewInMemoryBlacklistStore(logger)
	t.Cleanup(blacklist.Stop)

	jobs := postgres.NewJobStore(testDB)
	s := &MyServer{
		Config:     cfg,
		Logger:     logger,
		Health:     testDB,
		Users:      postgres.NewUserStore(testDB),
		Jobs:       jobs,
		JobService: jobservice.NewService(jobs, jobservice.Config{PageLimit: cfg.Jobs.PageLimit}, nil, logger),
		Tokens:     auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		Blacklist:  blacklist,
	}
	return s.RegisterRoutes()
}

func TestAccountAndJobFlow(t *testing.T) {
	r := newTestServer(t)
	email := uuid.NewString() + "@example.com"

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"name":     "Dana",
		"lastName": "Scully",
		"email":    email,
		"password": "trustno1!",
		"location": "Washington",
	}, "", r, "/api/v1/auth/register", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, model.RoleUser, resp["user"].(map[string]interface{})["role"], "seeded users exist already")

	rec, _ = testutil.MakeJSONRequest(gin.H{"email": email, "password": "trustno1!"}, "", r, "/api/v1/auth/login", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := utilities.FindCookie(rec, utilities.TokenCookie)
	require.NotNil(t, cookie)
	token := cookie.Value

	rec, _ = testutil.MakeJSONRequest(gin.H{"company": "FBI", "position": "Agent"}, token, r, "/api/v1/jobs", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/api/v1/jobs", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["totalJobs"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/api/v1/jobs/stats", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["defaultStats"].(map[string]interface{})[model.JobStatusPending])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/api/v1/users/current-user", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, email, resp["user"].(map[string]interface{})["email"])

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/api/v1/users/admin/app-stats", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/api/v1/auth/logout", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/api/v1/jobs", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", resp["error"])
}

func TestDemoAccountIsReadOnly(t *testing.T) {
	r := newTestServer(t)

	rec, _ := testutil.MakeJSONRequest(gin.H{"email": database.TestDemoUser.Email, "password": database.TestSeedPassword}, "", r, "/api/v1/auth/login", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code)
	token := utilities.FindCookie(rec, utilities.TokenCookie).Value

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/api/v1/jobs", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["totalJobs"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"company": "Acme", "position": "Dev"}, token, r, "/api/v1/jobs", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/api/v1/jobs/"+database.TestDemoJob.ID, http.MethodDelete)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, "", newTestServer(t), "/health", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up", resp["status"])
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestSwagger(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/jobs/stats")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs", nil)
	req.Header.Set("Origin", frontend)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	newTestServer(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, frontend, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestUnknownRoute(t *testing.T) {
	router := newTestServer(t)

	rec, resp := testutil.MakeJSONRequest(nil, "", router, "/api/v1/nope", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "Not found", resp["error"])

	rec, resp = testutil.MakeJSONRequest(nil, "", router, "/nope", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", resp["error"])
}

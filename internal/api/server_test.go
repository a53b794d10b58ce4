package api

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/auth"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/config"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/ratelimit"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/search"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/service"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/sse"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/store"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/stylist"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/weather"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error"`
}

// testServer wraps the API server and its backing services for tests.
type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
}

type testServerOptions struct {
	stylistURL    string
	stylistAPIKey string
	weatherURL    string
}

func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWith(t, testServerOptions{})
}

func setupTestServerWith(t *testing.T, opts testServerOptions) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	appLog := &logger.Logger{Logger: log}

	st, err := store.New(tmpDir, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(
		hex.EncodeToString(authKey),
		15*time.Minute,
		30*24*time.Hour,
	)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.Name = "Test Server"

	searchIndex, err := search.NewSearchIndex(search.Options{
		DataPath: tmpDir,
		Logger:   log,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = searchIndex.Close() })

	sseManager := sse.NewManager(log)

	sessionService := service.NewSessionService(st, tokenService, log)
	instanceService := service.NewInstanceService(st, log, cfg)
	authService := service.NewAuthService(st, tokenService, sessionService, instanceService, log)
	closetService := service.NewClosetService(st, searchIndex, sseManager, nil, appLog)
	t.Cleanup(closetService.Close)

	var weatherClient *weather.Client
	if opts.weatherURL != "" {
		weatherClient = weather.NewClient(opts.weatherURL, 600, log)
	}
	stylistClient := stylist.NewClient(opts.stylistURL, opts.stylistAPIKey, "test-model", log)

	outfitLimiter := ratelimit.New(100, 100)
	t.Cleanup(outfitLimiter.Stop)
	outfitService := service.NewOutfitService(closetService, weatherClient, stylistClient, st, sseManager, outfitLimiter, appLog)

	services := &Services{
		Instance: instanceService,
		Auth:     authService,
		Session:  sessionService,
		Closet:   closetService,
		Outfit:   outfitService,
		Weather:  service.NewWeatherService(weatherClient),
		Search:   service.NewSearchService(searchIndex, closetService, appLog),
	}

	s := NewServer(st, services, sseManager, log)
	t.Cleanup(s.Stop)

	_, err = instanceService.InitializeInstance(t.Context())
	require.NoError(t, err)

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, s.api),
		tokenService: tokenService,
	}
}

// setupRootUser runs initial setup and returns the access token and user ID.
func (ts *testServer) setupRootUser(t *testing.T) (token string, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":       "kamila@example.com",
		"password":    "correct horse battery",
		"displayName": "Kamila",
	})
	require.Equal(t, http.StatusOK, resp.Code, "setup failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	claims, err := ts.tokenService.VerifyAccessToken(envelope.Data.AccessToken)
	require.NoError(t, err)

	return envelope.Data.AccessToken, claims.UserID
}

func decodeEnvelope[T any](t *testing.T, resp *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var envelope testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope
}

// === Tests ===

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[HealthResponse](t, resp)
	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
	assert.Equal(t, "healthy", envelope.Data.Components["search"].Status)
}

func TestGetInstance_SetupRequired(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/instance")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[InstanceResponse](t, resp)
	assert.True(t, envelope.Data.SetupRequired)

	ts.setupRootUser(t)

	resp = ts.api.Get("/api/v1/instance")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope = decodeEnvelope[InstanceResponse](t, resp)
	assert.False(t, envelope.Data.SetupRequired)
}

func TestUpdateInstance_RequiresRoot(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Patch("/api/v1/instance",
		"Authorization: Bearer "+token,
		map[string]any{"name": "Kamila's Wardrobe"},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[InstanceResponse](t, resp)
	assert.Equal(t, "Kamila's Wardrobe", envelope.Data.Name)

	resp = ts.api.Patch("/api/v1/instance", map[string]any{"name": "Anonymous"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestErrorEnvelope(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Get("/api/v1/closet/items/item_missing", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	envelope := decodeEnvelope[struct{}](t, resp)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

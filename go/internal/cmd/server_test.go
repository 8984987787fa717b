package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/salon/go/internal/config"
	"github.com/mcdev12/salon/go/internal/leaderboard"
	"github.com/mcdev12/salon/go/internal/rpcapi"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Leaderboard.Backend = config.BackendMemory
	cfg.Server.TemplateDir = "../../../web/templates"
	cfg.Server.StaticDir = "../../../web/static"
	cfg.Quiz.BankPath = filepath.Join(t.TempDir(), "quiz.json")
	cfg.Writers.CatalogPath = filepath.Join(t.TempDir(), "writers.json")
	return cfg
}

func TestSetupServer_Routes(t *testing.T) {
	cfg := testConfig(t)
	services, err := setupServices(cfg, leaderboard.NewMemoryRepository(nil))
	require.NoError(t, err)

	srv := httptest.NewServer(setupServer(cfg, services).Handler)
	defer srv.Close()

	tests := []struct {
		path string
		want int
	}{
		{path: "/health", want: http.StatusOK},
		{path: "/info", want: http.StatusOK},
		{path: "/", want: http.StatusOK},
		{path: "/chess", want: http.StatusOK},
		{path: "/api/leaderboard", want: http.StatusOK},
		{path: "/api/writers", want: http.StatusOK},
		{path: "/api/writer/1", want: http.StatusNotFound},
		{path: "/api/quiz/start", want: http.StatusBadRequest},
		{path: "/api/rooms", want: http.StatusOK},
		{path: "/api/rooms/r1/state", want: http.StatusNotFound},
		{path: "/ws/stats", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestSetupServices_MissingTemplates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.TemplateDir = t.TempDir()

	_, err := setupServices(cfg, leaderboard.NewMemoryRepository(nil))
	assert.ErrorContains(t, err, "page templates")
}

func TestSetupLeaderboardStore_Memory(t *testing.T) {
	store, err := setupLeaderboardStore(t.Context(), testConfig(t))
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &leaderboard.MemoryRepository{}, store.Repository)
}

func TestHealth_ReportsStorageFailure(t *testing.T) {
	cfg := testConfig(t)
	services, err := setupServices(cfg, leaderboard.NewMemoryRepository(nil))
	require.NoError(t, err)
	services.HealthCheck = func(context.Context) error { return errors.New("connection refused") }

	srv := httptest.NewServer(setupServer(cfg, services).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLeaderboardStore_MemoryHealthy(t *testing.T) {
	store, err := setupLeaderboardStore(t.Context(), testConfig(t))
	require.NoError(t, err)
	defer store.Close()
	assert.NoError(t, store.Health(t.Context()))
}

func TestSetupServer_ConnectServices(t *testing.T) {
	cfg := testConfig(t)
	services, err := setupServices(cfg, leaderboard.NewMemoryRepository(nil))
	require.NoError(t, err)
	services.Rooms.Join("r1", "a")

	srv := httptest.NewServer(setupServer(cfg, services).Handler)
	defer srv.Close()

	rooms := rpcapi.NewRoomServiceClient(srv.Client(), srv.URL)
	resp, err := rooms.GetRoomState(t.Context(), connect.NewRequest(&rpcapi.GetRoomStateRequest{RoomId: "r1"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, resp.Msg.Room.Participants)

	board := rpcapi.NewLeaderboardServiceClient(srv.Client(), srv.URL)
	top, err := board.GetLeaderboard(t.Context(), connect.NewRequest(&rpcapi.GetLeaderboardRequest{}))
	require.NoError(t, err)
	assert.Empty(t, top.Msg.Entries)

	// Plain JSON POST, as curl or a browser would send it
	httpResp, err := http.Post(srv.URL+rpcapi.RoomServiceListRoomsProcedure, "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	httpResp.Body.Close()
	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
}

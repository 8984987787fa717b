package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":3000", cfg.Server.Addr())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
  allowed_origins: [http://localhost:5173]
logging:
  level: debug
  pretty: true
rooms:
  default_room: lobby
  idle_ttl: 30m
nats:
  url: nats://localhost:4222
quiz:
  round_size: 10
leaderboard:
  backend: memory
database:
  host: db
  name: salon_dev
  max_conns: 4
  auto_migrate: false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "web/templates", cfg.Server.TemplateDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	assert.Equal(t, "lobby", cfg.Rooms.DefaultRoom)
	assert.Equal(t, 30*time.Minute, cfg.Rooms.IdleTTL)
	assert.Equal(t, time.Minute, cfg.Rooms.SweepInterval)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "salon.rooms.events", cfg.NATS.Subject)
	assert.Equal(t, 10, cfg.Quiz.RoundSize)
	assert.Equal(t, BackendMemory, cfg.Leaderboard.Backend)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "salon_dev", cfg.Database.Database)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644))

	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("NATS_URL", "nats://nats:4222")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LEADERBOARD_BACKEND", "memory")
	t.Setenv("ROOM_IDLE_TTL", "0s")
	t.Setenv("DB_NAME", "from_env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, BackendMemory, cfg.Leaderboard.Backend)
	assert.Equal(t, time.Duration(0), cfg.Rooms.IdleTTL)
	assert.Equal(t, "from_env", cfg.Database.Database)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("LOG_PRETTY", "sometimes")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "LOG_PRETTY")
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestValidate_CollectsViolations(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	cfg.Logging.Level = "verbose"
	cfg.Rooms.DefaultRoom = ""
	cfg.Quiz.RoundSize = 0
	cfg.Leaderboard.Backend = "sqlite"

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"server.port", "logging.level", "rooms.default_room", "quiz.round_size", "leaderboard.backend"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestValidate_DatabaseOnlyForPostgresBackend(t *testing.T) {
	cfg := Default()
	cfg.Database.Host = ""

	assert.ErrorContains(t, cfg.Validate(), "database.host")

	cfg.Leaderboard.Backend = BackendMemory
	assert.NoError(t, cfg.Validate())
}

func TestPropertyValidPortAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := Default()
		cfg.Server.Port = rapid.IntRange(1, 65535).Draw(t, "port")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid port %d rejected: %v", cfg.Server.Port, err)
		}
	})
}

func TestPropertyInvalidPortRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := Default()
		cfg.Server.Port = rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(t, "port")
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid port %d accepted", cfg.Server.Port)
		}
	})
}

func TestPropertyIdleTTLNeedsSweepInterval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := Default()
		cfg.Rooms.IdleTTL = time.Duration(rapid.Int64Range(1, int64(24*time.Hour)).Draw(t, "ttl"))
		cfg.Rooms.SweepInterval = time.Duration(rapid.Int64Range(-10, 0).Draw(t, "sweep"))
		if err := cfg.Validate(); err == nil {
			t.Fatal("missing sweep interval accepted")
		}
	})
}
func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load("../../../config.example.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "salon", cfg.Database.Database)
	assert.True(t, cfg.Database.AutoMigrate)
}

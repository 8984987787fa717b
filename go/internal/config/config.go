// Package config loads the salon server configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mcdev12/salon/go/internal/dbconfig"
	"gopkg.in/yaml.v3"
)

// Leaderboard storage backends
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	TemplateDir     string        `yaml:"template_dir"`
	StaticDir       string        `yaml:"static_dir"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the ":port" listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Pretty switches to the human readable console writer.
	Pretty bool `yaml:"pretty"`
}

// RoomsConfig holds chess room settings.
type RoomsConfig struct {
	DefaultRoom string `yaml:"default_room"`
	// IdleTTL of zero disables eviction.
	IdleTTL       time.Duration `yaml:"idle_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// GatewayConfig holds WebSocket connection settings.
type GatewayConfig struct {
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	PingInterval   time.Duration `yaml:"ping_interval"`
	MaxMessageSize int64         `yaml:"max_message_size"`
	SendBufferSize int           `yaml:"send_buffer_size"`
}

// NATSConfig holds the optional room activity feed settings. An empty URL
// disables the feed.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// QuizConfig holds quiz settings.
type QuizConfig struct {
	BankPath  string `yaml:"bank_path"`
	RoundSize int    `yaml:"round_size"`
}

// WritersConfig holds writer catalog settings.
type WritersConfig struct {
	CatalogPath string `yaml:"catalog_path"`
}

// LeaderboardConfig selects the leaderboard storage.
type LeaderboardConfig struct {
	Backend string `yaml:"backend"`
}

// DatabaseConfig holds Postgres settings.
type DatabaseConfig struct {
	dbconfig.Config `yaml:",inline"`
	AutoMigrate     bool `yaml:"auto_migrate"`
}

// Config is the top-level application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Rooms       RoomsConfig       `yaml:"rooms"`
	Gateway     GatewayConfig     `yaml:"gateway"`
	NATS        NATSConfig        `yaml:"nats"`
	Quiz        QuizConfig        `yaml:"quiz"`
	Writers     WritersConfig     `yaml:"writers"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Database    DatabaseConfig    `yaml:"database"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            3000,
			TemplateDir:     "web/templates",
			StaticDir:       "web/static",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Rooms: RoomsConfig{
			DefaultRoom:   "default",
			IdleTTL:       time.Hour,
			SweepInterval: time.Minute,
		},
		Gateway: GatewayConfig{
			WriteTimeout:   10 * time.Second,
			ReadTimeout:    60 * time.Second,
			PingInterval:   30 * time.Second,
			MaxMessageSize: 1024,
			SendBufferSize: 256,
		},
		NATS: NATSConfig{
			Subject: "salon.rooms.events",
		},
		Quiz: QuizConfig{
			BankPath:  "data/quiz_questions.json",
			RoundSize: 15,
		},
		Writers: WritersConfig{
			CatalogPath: "data/writers.json",
		},
		Leaderboard: LeaderboardConfig{
			Backend: BackendPostgres,
		},
		Database: DatabaseConfig{
			Config:      dbconfig.Default(),
			AutoMigrate: true,
		},
	}
}

// Load reads the YAML file at path on top of Default, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg, err := cfg.withEnv()
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withEnv() (Config, error) {
	var errs []string

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("PORT must be a number, got %q", v))
		}
		c.Server.Port = port
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	setString(&c.Server.TemplateDir, "TEMPLATE_DIR")
	setString(&c.Server.StaticDir, "STATIC_DIR")
	setString(&c.Logging.Level, "LOG_LEVEL")
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("LOG_PRETTY must be a boolean, got %q", v))
		}
		c.Logging.Pretty = pretty
	}
	if v := os.Getenv("ROOM_IDLE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("ROOM_IDLE_TTL must be a duration, got %q", v))
		}
		c.Rooms.IdleTTL = ttl
	}
	setString(&c.NATS.URL, "NATS_URL")
	setString(&c.Quiz.BankPath, "QUIZ_BANK_PATH")
	setString(&c.Writers.CatalogPath, "WRITERS_CATALOG_PATH")
	setString(&c.Leaderboard.Backend, "LEADERBOARD_BACKEND")
	c.Database.Config = c.Database.Config.WithEnv()

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return c, nil
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.TemplateDir == "" {
		errs = append(errs, "server.template_dir must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}

	if c.Rooms.DefaultRoom == "" {
		errs = append(errs, "rooms.default_room must not be empty")
	}
	if c.Rooms.IdleTTL < 0 {
		errs = append(errs, "rooms.idle_ttl must not be negative")
	}
	if c.Rooms.IdleTTL > 0 && c.Rooms.SweepInterval <= 0 {
		errs = append(errs, "rooms.sweep_interval must be positive when rooms.idle_ttl is set")
	}

	if c.Gateway.PingInterval <= 0 || c.Gateway.ReadTimeout <= c.Gateway.PingInterval {
		errs = append(errs, "gateway.read_timeout must exceed a positive gateway.ping_interval")
	}
	if c.Gateway.WriteTimeout <= 0 {
		errs = append(errs, "gateway.write_timeout must be positive")
	}
	if c.Gateway.MaxMessageSize < 64 {
		errs = append(errs, fmt.Sprintf("gateway.max_message_size must be >= 64, got %d", c.Gateway.MaxMessageSize))
	}

	if c.NATS.URL != "" && c.NATS.Subject == "" {
		errs = append(errs, "nats.subject must not be empty when nats.url is set")
	}

	if c.Quiz.RoundSize < 1 {
		errs = append(errs, fmt.Sprintf("quiz.round_size must be >= 1, got %d", c.Quiz.RoundSize))
	}

	switch c.Leaderboard.Backend {
	case BackendMemory:
	case BackendPostgres:
		if err := c.Database.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	default:
		errs = append(errs, fmt.Sprintf("leaderboard.backend must be one of [postgres, memory], got %q", c.Leaderboard.Backend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/salon/go/internal/chess"
	"github.com/mcdev12/salon/go/internal/config"
	"github.com/mcdev12/salon/go/internal/gateway"
	"github.com/mcdev12/salon/go/internal/leaderboard"
	"github.com/mcdev12/salon/go/internal/pages"
	"github.com/mcdev12/salon/go/internal/quiz"
	"github.com/mcdev12/salon/go/internal/rooms"
	"github.com/mcdev12/salon/go/internal/writers"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Rooms          *rooms.Registry
	Janitor        *rooms.Janitor
	Gateway        *gateway.Service
	RoomRPC        *gateway.RoomService
	Leaderboard    *leaderboard.Service
	LeaderboardRPC *leaderboard.RPCService
	Quiz           *quiz.Service
	Writers        *writers.Service
	Pages          *pages.Pages

	// HealthCheck reports storage health for /health, if set
	HealthCheck func(ctx context.Context) error
}

func setupServices(cfg config.Config, repo leaderboard.LeaderboardRepository) (*Services, error) {
	// Wire up dependency injection chain
	// Storage → App layer → Service layer

	// Rooms
	clock := clockwork.NewRealClock()
	registry := rooms.NewRegistry(chess.NewEngine(), rooms.WithClock(clock))
	janitor := rooms.NewJanitor(registry, clock, rooms.JanitorConfig{
		IdleTTL:       cfg.Rooms.IdleTTL,
		SweepInterval: cfg.Rooms.SweepInterval,
	})

	// Gateway
	connCfg := gateway.DefaultConnectionConfig()
	connCfg.WriteTimeout = cfg.Gateway.WriteTimeout
	connCfg.ReadTimeout = cfg.Gateway.ReadTimeout
	connCfg.PingInterval = cfg.Gateway.PingInterval
	connCfg.MaxMessageSize = cfg.Gateway.MaxMessageSize
	connCfg.SendBufferSize = cfg.Gateway.SendBufferSize
	connCfg.CheckOrigin = gateway.AllowOrigins(cfg.Server.AllowedOrigins)

	publisherCfg := gateway.DefaultPublisherConfig()
	publisherCfg.URL = cfg.NATS.URL
	publisherCfg.Subject = cfg.NATS.Subject

	gatewayService, err := gateway.NewService(gateway.Config{
		ConnectionConfig: connCfg,
		PublisherConfig:  publisherCfg,
		DefaultRoom:      cfg.Rooms.DefaultRoom,
	}, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway service: %w", err)
	}

	// Leaderboard
	leaderboardApp := leaderboard.NewApp(repo)
	leaderboardService := leaderboard.NewService(leaderboardApp)
	leaderboardRPC := leaderboard.NewRPCService(leaderboardApp)

	// Quiz
	bank, err := quiz.LoadBank(cfg.Quiz.BankPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}
	log.Info().Int("questions", bank.Len()).Str("path", cfg.Quiz.BankPath).Msg("question bank loaded")
	quizService := quiz.NewService(bank, leaderboardApp, cfg.Quiz.RoundSize)

	// Writers
	catalog, err := writers.LoadCatalog(cfg.Writers.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load writer catalog: %w", err)
	}
	writersService := writers.NewService(catalog)

	// Pages
	sitePages, err := pages.New(cfg.Server.TemplateDir, cfg.Server.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	return &Services{
		Rooms:          registry,
		Janitor:        janitor,
		Gateway:        gatewayService,
		RoomRPC:        gateway.NewRoomService(registry),
		Leaderboard:    leaderboardService,
		LeaderboardRPC: leaderboardRPC,
		Quiz:           quizService,
		Writers:        writersService,
		Pages:          sitePages,
	}, nil
}

package main

import (
	"encoding/json"
	"net/http"

	"connectrpc.com/grpcreflect"
	"github.com/mcdev12/salon/go/internal/config"
	"github.com/mcdev12/salon/go/internal/rpcapi"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(cfg config.Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	// Register services
	registerServices(mux, services)

	// Setup reflection for grpcui/grpcurl
	setupReflection(mux)

	// Add health check endpoint
	setupHealthCheck(mux, services)

	// Wrap with CORS
	handler := c.Handler(mux)

	return &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	services.Gateway.RegisterRoutes(mux)

	// Connect services, next to the JSON routes they mirror
	roomServicePath, roomServiceHandler := rpcapi.NewRoomServiceHandler(services.RoomRPC)
	mux.Handle(roomServicePath, roomServiceHandler)

	leaderboardServicePath, leaderboardServiceHandler := rpcapi.NewLeaderboardServiceHandler(services.LeaderboardRPC)
	mux.Handle(leaderboardServicePath, leaderboardServiceHandler)

	services.Leaderboard.RegisterRoutes(mux)
	services.Quiz.RegisterRoutes(mux)
	services.Writers.RegisterRoutes(mux)
	services.Pages.RegisterRoutes(mux)
}

func setupReflection(mux *http.ServeMux) {
	reflector := grpcreflect.NewStaticReflector(
		rpcapi.RoomServiceName,
		rpcapi.LeaderboardServiceName,
	)
	mux.Handle(grpcreflect.NewHandlerV1(reflector))
	mux.Handle(grpcreflect.NewHandlerV1Alpha(reflector))
}

func setupHealthCheck(mux *http.ServeMux, services *Services) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if services.HealthCheck != nil {
			if err := services.HealthCheck(r.Context()); err != nil {
				log.Warn().Err(err).Msg("health check failed")
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("Failed to write health check response: %v", err)
		}
	})

	mux.HandleFunc("GET /info", func(w http.ResponseWriter, r *http.Request) {
		stats := services.Gateway.GetStats()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"service":     "salon",
			"rooms":       services.Rooms.Len(),
			"connections": stats.TotalConnections,
		}); err != nil {
			log.Error().Err(err).Msg("failed to encode service info")
		}
	})
}

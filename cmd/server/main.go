// Command server runs the development advisory backend: the full REST
// surface cropctl talks to, backed by an in-memory store seeded with
// catalogue data.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rrens/crop-advisory/internal/api"
	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/logging"
	"github.com/Rrens/crop-advisory/internal/repository/memory"
	"github.com/Rrens/crop-advisory/internal/repository/redis"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	closer, err := logging.Setup(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting crop advisory API server")

	if cfg.OTP.Static != "" {
		log.Warn().Msg("Static OTP is enabled; do not expose this server")
	}

	deps := api.Deps{Store: memory.New()}

	// Redis is only needed for the send-otp throttle
	if cfg.OTP.SendLimit > 0 {
		redisClient, err := redis.NewClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		deps.Limiter = redis.NewRateLimiter(redisClient, cfg.OTP.SendLimit, cfg.OTP.SendWindow)
		deps.Ready = append(deps.Ready, redisClient)
		log.Info().
			Int("limit", cfg.OTP.SendLimit).
			Dur("window", cfg.OTP.SendWindow).
			Msg("OTP send throttling enabled")
	}

	router := api.NewRouter(cfg, deps)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"raiseme/internal/adapter/repo"
	"raiseme/internal/auth"
	"raiseme/internal/http/handlers"
	"raiseme/internal/http/httpapi"
	"raiseme/internal/infra"
	"raiseme/internal/infra/geoip"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := infra.Migrate(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}

	revoked := repo.NewRevokedTokenRepository(dbpool)
	authority := auth.NewAuthority(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, revoked)

	app := &handlers.App{
		Users:     repo.NewUserRepository(dbpool),
		Campaigns: repo.NewCampaignRepository(dbpool),
		Donations: repo.NewDonationRepository(dbpool),
		Payments:  repo.NewPaymentRepository(dbpool),
		Auth:      authority,
		GeoIP:     resolver,
		Logger:    logger,
	}

	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

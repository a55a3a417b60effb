package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/emmaworks/family-advisor-api/internal/config"
	"github.com/emmaworks/family-advisor-api/internal/handler"
	"github.com/emmaworks/family-advisor-api/internal/repository"
	"github.com/emmaworks/family-advisor-api/internal/security"
	"github.com/emmaworks/family-advisor-api/internal/usecase"
	"github.com/emmaworks/family-advisor-api/shared/auth"
	"github.com/emmaworks/family-advisor-api/shared/mailer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := repository.Connect(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	db := client.Database(cfg.DatabaseName)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	userRepo := repository.NewUserMongoRepository(indexCtx, &logger, db)
	familyRepo := repository.NewFamilyMongoRepository(indexCtx, &logger, db)
	indexCancel()
	messageRepo := repository.NewChatMessageMongoRepository(db)
	contentRepo := repository.NewContentMongoRepository(db)

	hasher := security.NewArgon2Hasher()
	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	var inviteMailer usecase.InviteMailer
	if cfg.SMTP.Enabled() {
		inviteMailer = mailer.NewMailer(cfg.SMTP)
	}

	linkingUsecase := usecase.NewAccountLinkingUsecase(userRepo, familyRepo, hasher, inviteMailer, &logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, jwtAuth, cfg.Token)
	chatUsecase := usecase.NewChatUsecase(messageRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(contentRepo)

	validate := validator.New(validator.WithRequiredStructEnabled())

	router := handler.NewRouter(
		cfg,
		&logger,
		handler.NewAuthHandler(linkingUsecase, authUsecase, validate, &logger),
		handler.NewChatHandler(chatUsecase, validate, &logger),
		handler.NewDashboardHandler(dashboardUsecase, &logger),
		handler.NewHealthHandler(func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}),
		handler.NewAuthMiddleware(authUsecase),
	)

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down HTTP server")
	}
}

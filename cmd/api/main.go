package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/izthiaka/loumaa/internal/config"
	"github.com/izthiaka/loumaa/internal/handler"
	"github.com/izthiaka/loumaa/internal/mailer"
	"github.com/izthiaka/loumaa/internal/matricule"
	"github.com/izthiaka/loumaa/internal/model"
	"github.com/izthiaka/loumaa/internal/repository"
	"github.com/izthiaka/loumaa/internal/security"
	"github.com/izthiaka/loumaa/internal/token"
	"github.com/izthiaka/loumaa/internal/usecase"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	roleRepo := repository.NewRoleMongoRepository(ctx, &logger, db)
	sessionRepo := repository.NewSessionMongoRepository(ctx, &logger, db)

	if err := seedDefaultRole(ctx, roleRepo, cfg.Signup.DefaultRole); err != nil {
		logger.Fatal().Err(err).Str("role", cfg.Signup.DefaultRole).Msg("failed to seed default role")
	}

	hasher := security.NewHasher()
	tokens := token.NewIssuer(cfg.Token)
	mail := mailer.NewMailer(&logger, cfg.SMTP)

	authUsecase := usecase.NewAuthUsecase(userRepo, roleRepo, sessionRepo, hasher, tokens, cfg, &logger)
	passwordUsecase := usecase.NewPasswordUsecase(userRepo, sessionRepo, hasher, mail, cfg, &logger)

	authHandler := handler.NewAuthHandler(authUsecase, passwordUsecase, &logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Mount("/auth", authHandler.Routes())

	server := &http.Server{
		Addr:         cfg.App.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.App.Address).Msg("starting http server")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// seedDefaultRole makes sure the role assigned at sign-up exists. Safe to
// run on every boot.
func seedDefaultRole(ctx context.Context, roleRepo repository.RoleRepository, name string) error {
	_, err := roleRepo.GetByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	code, err := matricule.WithPrefix("ROL-", 10)
	if err != nil {
		return err
	}

	_, err = roleRepo.Create(ctx, &model.Role{Name: name, Code: code})
	if mongo.IsDuplicateKeyError(err) {
		// Another instance seeded it first.
		return nil
	}
	return err
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	handler "github.com/pollpulse/api/internal/adapters/handler/http"
	repo "github.com/pollpulse/api/internal/adapters/repository/postgres"
	"github.com/pollpulse/api/internal/adapters/storage/s3"
	"github.com/pollpulse/api/internal/config"
	"github.com/pollpulse/api/internal/core/services"
)

func main() {
	cfg := config.MustLoad()
	logger := newLogger(cfg.Env)

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	fileStore, err := s3.NewFileStore(cfg.S3)
	if err != nil {
		log.Fatal(err)
	}

	pollRepo := repo.NewPollRepository(db)
	userRepo := repo.NewUserRepository(db)

	pollSvc := services.NewPollService(pollRepo)
	voteSvc := services.NewVoteService(pollRepo)
	feedSvc := services.NewFeedService(pollRepo)
	bookmarkSvc := services.NewBookmarkService(userRepo, pollRepo)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, []byte(cfg.JWTSecret))

	router := handler.NewHandler(
		logger,
		[]byte(cfg.JWTSecret),
		handler.NewAuthHandler(authSvc, userSvc, fileStore),
		handler.NewPollHandler(pollSvc, feedSvc),
		handler.NewVoteHandler(voteSvc),
		handler.NewBookmarkHandler(bookmarkSvc),
	)

	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func newLogger(env string) *slog.Logger {
	if env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

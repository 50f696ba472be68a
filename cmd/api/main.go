// Package main is the entry point for the UsTinerary API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/ustinerary/planner/internal/config"
	"github.com/ustinerary/planner/internal/external"
	"github.com/ustinerary/planner/internal/handler"
	"github.com/ustinerary/planner/internal/identity"
	"github.com/ustinerary/planner/internal/middleware"
	"github.com/ustinerary/planner/internal/notify"
	"github.com/ustinerary/planner/internal/repo"
	"github.com/ustinerary/planner/internal/service"
	"github.com/ustinerary/planner/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	// --- Store ------------------------------------------------------------
	backend, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Every write is announced on the change hub. With REDIS_URL set the
	// hub also relays changes made by other server processes.
	var relay *redis.Client
	if cfg.RedisURL != "" {
		relay, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to open change relay", "error", err)
			os.Exit(1)
		}
		defer relay.Close()
	}
	hub := notify.NewHub(relay, logger)
	go func() {
		if err := hub.Run(ctx); err != nil {
			slog.Error("change hub stopped", "error", err)
		}
	}()
	kv := store.NewNotifying(backend, hub)

	// --- Repositories -----------------------------------------------------
	trips := repo.NewTripRepo(kv)
	checklists := repo.NewChecklistRepo(kv)
	details := repo.NewDetailRepo(kv)
	budgets := repo.NewBudgetRepo(kv)
	assignees := repo.NewAssigneeRepo(kv)
	polls := repo.NewPollRepo(kv)
	profiles := repo.NewProfileRepo(kv)

	// --- External providers -----------------------------------------------
	photos := external.NewUnsplash(external.Options{
		APIKey:     cfg.UnsplashAccessKey,
		Timeout:    cfg.ExternalTimeout,
		RatePerSec: cfg.ExternalRatePerSec,
	})
	places := external.NewGeoapify(external.Options{
		APIKey:     cfg.GeoapifyAPIKey,
		Timeout:    cfg.ExternalTimeout,
		RatePerSec: cfg.ExternalRatePerSec,
	})

	// --- Services ---------------------------------------------------------
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithPhotoTimeout(cfg.ExternalTimeout),
	}
	users := identity.NewDirectory(identity.TestUsers)
	tokens := identity.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	svcs := handler.Services{
		Trips: service.NewTripService(trips, photos, opts...),
		Sections: service.NewSectionService(service.SectionRepos{
			Trips:      trips,
			Checklists: checklists,
			Details:    details,
			Budgets:    budgets,
			Assignees:  assignees,
			Polls:      polls,
			Committer:  repo.NewCommitter(kv),
		}, opts...),
		Details:     service.NewDetailService(trips, checklists, details, polls, opts...),
		Budgets:     service.NewBudgetService(trips, checklists, budgets),
		Comments:    service.NewCommentService(trips, checklists, opts...),
		Polls:       service.NewPollService(trips, details, polls),
		Assignments: service.NewAssignmentService(trips, checklists, assignees),
		Places:      service.NewPlacesService(trips, places, opts...),
		Profiles:    service.NewProfileService(profiles, opts...),
		Users:       users,
		Tokens:      tokens,
		Changes:     hub,
	}

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → SlogLogger → Recoverer, then the API guards.
	// Identity runs last so every handler sees the acting user (or a guest).
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	if cfg.RateLimitPerSec > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst).Limit)
	}
	r.Use(middleware.NewIdentity(tokens))

	r.Mount("/", handler.NewServer(svcs, cfg.CORSOrigins).Routes())

	// --- HTTP Server ------------------------------------------------------
	// No WriteTimeout: /events holds websocket connections open indefinitely.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	cancelRun()
	slog.Info("server stopped")
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/bunaifromhills/admin-console/internal/config"
	"github.com/bunaifromhills/admin-console/internal/gateway"
	"github.com/bunaifromhills/admin-console/internal/notify"
	"github.com/bunaifromhills/admin-console/internal/screens"
	"github.com/bunaifromhills/admin-console/internal/session"
)

func main() {
	cfg := config.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}

	// ── Services ────────────────────────────────────────────
	hub := notify.NewHub()
	defer hub.Close()

	verifier := session.NewVerifier(session.NewPostgresRepository(db))
	sessions := session.NewStore(verifier, []byte(cfg.JWTSecret), cfg.TokenFile)

	gw := gateway.New(cfg.StorefrontURL, sessions, hub,
		log.With().Str("component", "gateway").Logger())
	defer gw.Close()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	screens.NewAuthHandler(sessions).RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(screens.RequireSession(sessions))
		screens.NewNotificationsHandler(hub).RegisterRoutes(r)
		screens.NewDashboardHandler(gw).RegisterRoutes(r)
		screens.NewProductsHandler(gw).RegisterRoutes(r)
		screens.NewOrdersHandler(gw).RegisterRoutes(r)
		screens.NewCustomersHandler(gw).RegisterRoutes(r)
		screens.NewGalleryHandler(gw).RegisterRoutes(r)
		screens.NewBlogHandler(gw).RegisterRoutes(r)
	})

	// ── Serve ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Str("storefront", cfg.StorefrontURL).
			Msg("admin console listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

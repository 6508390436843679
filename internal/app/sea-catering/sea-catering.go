// Package seacatering собирает и запускает HTTP-приложение SEA Catering:
// хранилище, миграции, кэш, сервисы, маршруты и graceful shutdown.
package seacatering

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/sea-catering/internal/cache"
	"github.com/magabrotheeeer/sea-catering/internal/config"
	"github.com/magabrotheeeer/sea-catering/internal/lib/session"
	"github.com/magabrotheeeer/sea-catering/internal/migrations"
	authservice "github.com/magabrotheeeer/sea-catering/internal/services/auth"
	mealplanservice "github.com/magabrotheeeer/sea-catering/internal/services/mealplan"
	metricsservice "github.com/magabrotheeeer/sea-catering/internal/services/metrics"
	subscriptionservice "github.com/magabrotheeeer/sea-catering/internal/services/subscription"
	testimonialservice "github.com/magabrotheeeer/sea-catering/internal/services/testimonial"
	"github.com/magabrotheeeer/sea-catering/internal/storage/repository"
)

// App держит собранный HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: подключает базу, прогоняет миграции,
// поднимает кэш и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	codec, err := session.NewCodec(cfg.SessionKey)
	if err != nil {
		return nil, err
	}

	deps := Deps{
		Logger:       logger,
		Codec:        codec,
		Storage:      db,
		Auth:         authservice.New(db, logger),
		MealPlan:     mealplanservice.New(db, cacheRedis, logger),
		Subscription: subscriptionservice.New(db, cacheRedis, logger),
		Testimonial:  testimonialservice.New(db, logger),
		Metrics:      metricsservice.New(db, cacheRedis, logger),
		SessionTTL:   cfg.SessionTTL,
		CSRFTokenTTL: cfg.CSRFTokenTTL,
		SecureCookie: cfg.CookieSecure,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}

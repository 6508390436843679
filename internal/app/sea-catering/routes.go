// Package seacatering предоставляет маршруты для основного приложения.
package seacatering

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/admin/growth"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/admin/plans"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/admin/revenue"
	adminsummary "github.com/magabrotheeeer/sea-catering/internal/http/handlers/admin/summary"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/auth/csrftoken"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/auth/register"
	mealplanlist "github.com/magabrotheeeer/sea-catering/internal/http/handlers/mealplan/list"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/subscription/health"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/sea-catering/internal/http/handlers/subscription/update"
	testimonialcreate "github.com/magabrotheeeer/sea-catering/internal/http/handlers/testimonial/create"
	testimoniallist "github.com/magabrotheeeer/sea-catering/internal/http/handlers/testimonial/list"
	testimonialremove "github.com/magabrotheeeer/sea-catering/internal/http/handlers/testimonial/remove"
	"github.com/magabrotheeeer/sea-catering/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sea-catering/internal/http/routeguard"
	"github.com/magabrotheeeer/sea-catering/internal/lib/session"
	authservice "github.com/magabrotheeeer/sea-catering/internal/services/auth"
	mealplanservice "github.com/magabrotheeeer/sea-catering/internal/services/mealplan"
	metricsservice "github.com/magabrotheeeer/sea-catering/internal/services/metrics"
	subscriptionservice "github.com/magabrotheeeer/sea-catering/internal/services/subscription"
	testimonialservice "github.com/magabrotheeeer/sea-catering/internal/services/testimonial"
	"github.com/magabrotheeeer/sea-catering/internal/storage/repository"
)

// Deps перечисляет зависимости маршрутов приложения.
type Deps struct {
	Logger       *slog.Logger
	Codec        session.Codec
	Storage      *repository.Storage
	Auth         *authservice.Service
	MealPlan     *mealplanservice.Service
	Subscription *subscriptionservice.Service
	Testimonial  *testimonialservice.Service
	Metrics      *metricsservice.Service
	SessionTTL   time.Duration
	CSRFTokenTTL time.Duration
	SecureCookie bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, deps Deps) {
	logger := deps.Logger
	limiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.SessionMiddleware(deps.Codec, logger),
		middlewarectx.RateLimitMiddleware(logger, limiter),
		routeguard.Middleware(routeguard.DefaultTable(), logger),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, deps.Auth).ServeHTTP)
		r.Get("/auth/me", me.New(logger).ServeHTTP)
		r.Get("/csrf", csrftoken.New(logger, deps.CSRFTokenTTL, deps.SecureCookie).ServeHTTP)
		r.Get("/meal-plans", mealplanlist.New(logger, deps.MealPlan).ServeHTTP)
		r.Get("/testimonials", testimoniallist.New(logger, deps.Testimonial).ServeHTTP)
		r.Get("/health", health.New(logger, deps.Storage).ServeHTTP)

		// Открытые изменяющие конечные точки под CSRF-защитой
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.CSRFMiddleware(logger))
			r.Post("/auth/login", login.New(logger, deps.Auth, deps.Codec, deps.SessionTTL, deps.SecureCookie).ServeHTTP)
			r.Post("/auth/logout", logout.New(logger, deps.SecureCookie).ServeHTTP)
			r.Post("/testimonials", testimonialcreate.New(logger, deps.Testimonial).ServeHTTP)
		})

		// Группа с обязательной сессией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAuth(logger))
			r.Use(middlewarectx.CSRFMiddleware(logger))
			r.Post("/subscriptions", create.New(logger, deps.Subscription).ServeHTTP)
			r.Get("/subscriptions/user", list.New(logger, deps.Subscription).ServeHTTP)
			r.Get("/subscriptions/{uid}", read.New(logger, deps.Subscription).ServeHTTP)
			r.Patch("/subscriptions/{uid}", update.New(logger, deps.Subscription).ServeHTTP)
			r.Delete("/subscriptions/{uid}", remove.New(logger, deps.Subscription).ServeHTTP)
		})

		// Группа администратора
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAdmin(logger))
			r.Use(middlewarectx.CSRFMiddleware(logger))
			r.Get("/admin/metrics", adminsummary.New(logger, deps.Metrics).ServeHTTP)
			r.Get("/admin/charts/revenue", revenue.New(logger, deps.Metrics).ServeHTTP)
			r.Get("/admin/charts/growth", growth.New(logger, deps.Metrics).ServeHTTP)
			r.Get("/admin/charts/plans", plans.New(logger, deps.Metrics).ServeHTTP)
			r.Delete("/testimonials/{id}", testimonialremove.New(logger, deps.Testimonial).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

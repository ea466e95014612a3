// Package trainerapi собирает HTTP-приложение сервиса абонементов.
package trainerapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/trainer-memberships/internal/config"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/clients/create"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/clients/list"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/clients/read"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/clients/remove"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/clients/renew"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/clients/update"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/health"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/license/redeem"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/license/status"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/response"
)

// AuthService — регистрация, вход и проверка токена.
type AuthService interface {
	register.Service
	login.Service
	middlewarectx.Service
}

// ClientService — операции над клиентами тренера.
type ClientService interface {
	create.Service
	read.Service
	update.Service
	remove.Service
	list.Service
	renew.Service
}

// LicenseService — состояние и активация лицензии.
type LicenseService interface {
	status.Service
	redeem.Service
}

// Deps — зависимости маршрутов.
type Deps struct {
	Auth     AuthService
	Clients  ClientService
	Licenses LicenseService
	Health   map[string]health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, support config.Support, deps Deps) {
	contacts := response.Contacts{Email: support.SupportEmail, WhatsApp: support.SupportWhatsApp}

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, deps.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Auth).ServeHTTP)

		// Лицензия доступна и без действующей лицензии: иначе её не активировать
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Auth, logger))
			r.Get("/license", status.New(logger, deps.Licenses, contacts).ServeHTTP)
			r.Post("/license/redeem", redeem.New(logger, deps.Licenses).ServeHTTP)
		})

		// Клиенты: JWT, ограничение частоты по тренеру, затем проверка лицензии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateLimitBurst))
			r.Use(middlewarectx.LicenseGateMiddleware(logger, deps.Licenses, contacts))
			r.Post("/clients", create.New(logger, deps.Clients).ServeHTTP)
			r.Get("/clients", list.New(logger, deps.Clients).ServeHTTP)
			r.Get("/clients/{id}", read.New(logger, deps.Clients).ServeHTTP)
			r.Put("/clients/{id}", update.New(logger, deps.Clients).ServeHTTP)
			r.Delete("/clients/{id}", remove.New(logger, deps.Clients).ServeHTTP)
			r.Post("/clients/{id}/renew", renew.New(logger, deps.Clients).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, deps.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

// Package eventsity предоставляет маршруты для основного приложения.
package eventsity

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/eventsity/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/eventsity/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/eventsity/internal/http/handlers/auth/register"
	eventcreate "github.com/magabrotheeeer/eventsity/internal/http/handlers/event/create"
	eventlist "github.com/magabrotheeeer/eventsity/internal/http/handlers/event/list"
	eventremove "github.com/magabrotheeeer/eventsity/internal/http/handlers/event/remove"
	eventsearch "github.com/magabrotheeeer/eventsity/internal/http/handlers/event/search"
	eventupdate "github.com/magabrotheeeer/eventsity/internal/http/handlers/event/update"
	profileget "github.com/magabrotheeeer/eventsity/internal/http/handlers/profile/get"
	profileupdate "github.com/magabrotheeeer/eventsity/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/eventsity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventsity/internal/lib/filestore"
	authservice "github.com/magabrotheeeer/eventsity/internal/services/auth"
	eventservice "github.com/magabrotheeeer/eventsity/internal/services/event"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, eventService *eventservice.EventService, photos *filestore.FileStore) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/users/register", register.New(logger, authService).ServeHTTP)
		r.Post("/users/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/users/logout", logout.New(logger).ServeHTTP)
			r.Get("/users/profile", profileget.New(logger, authService).ServeHTTP)
			r.Put("/users/profile", profileupdate.New(logger, authService, photos).ServeHTTP)
			r.Get("/events", eventlist.New(logger, eventService).ServeHTTP)
			r.Get("/events/search", eventsearch.New(logger, eventService).ServeHTTP)
			r.Post("/events", eventcreate.New(logger, eventService).ServeHTTP)
			r.Put("/events/{id}", eventupdate.New(logger, eventService).ServeHTTP)
			r.Delete("/events/{id}", eventremove.New(logger, eventService).ServeHTTP)
		})
	})

	// Раздача загруженных фотографий профиля
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(photos.Dir()))))

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

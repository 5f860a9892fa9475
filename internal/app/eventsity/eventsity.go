// Package eventsity собирает все зависимости сервиса событий
// и управляет жизненным циклом HTTP-сервера.
package eventsity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/eventsity/internal/cache"
	"github.com/magabrotheeeer/eventsity/internal/config"
	"github.com/magabrotheeeer/eventsity/internal/lib/filestore"
	"github.com/magabrotheeeer/eventsity/internal/lib/jwt"
	"github.com/magabrotheeeer/eventsity/internal/migrations"
	"github.com/magabrotheeeer/eventsity/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/eventsity/internal/services/auth"
	eventservice "github.com/magabrotheeeer/eventsity/internal/services/event"
	"github.com/magabrotheeeer/eventsity/internal/storage"
)

// App объединяет сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New инициализирует хранилище, миграции, кеш, очередь уведомлений,
// сервисы и маршруты приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
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

	var notifier eventservice.Notifier = rabbitmq.NopNotifier{}
	if cfg.AmqpConnectionString != "" {
		conn, err := rabbitmq.Connect(cfg.AmqpConnectionString, 5, 3*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn)
		if err != nil {
			return nil, err
		}
		notifier = rabbitmq.NewNotifier(ch)
	} else {
		logger.Warn("amqp connection string is empty, event notifications disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker, cacheRedis, logger)
	eventService := eventservice.NewEventService(db, cacheRedis, notifier, logger)

	photos, err := filestore.New(cfg.UploadsDir, cfg.UploadsPath)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, eventService, photos)

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
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}

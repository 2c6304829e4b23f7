// Package gymmanager собирает приложение: хранилище, миграции,
// сессии, сервисы, маршруты и HTTP-сервер.
package gymmanager

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/andresnova/gym-manager/internal/cache"
	"github.com/andresnova/gym-manager/internal/config"
	"github.com/andresnova/gym-manager/internal/migrations"
	"github.com/andresnova/gym-manager/internal/services/auth"
	memberservice "github.com/andresnova/gym-manager/internal/services/member"
	routineservice "github.com/andresnova/gym-manager/internal/services/routine"
	"github.com/andresnova/gym-manager/internal/session"
	"github.com/andresnova/gym-manager/internal/storage/repository"
)

// App держит HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует приложение. Порядок фиксирован: база,
// миграции, посев администратора, Redis, сервисы, маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	authService := auth.New(db)

	// Первый запуск на пустой базе: администратор из конфига.
	// Повторные запуски ничего не меняют.
	created, err := authService.EnsureAdmin(ctx, cfg.AdminBootstrap.Name,
		cfg.AdminBootstrap.Email, cfg.AdminBootstrap.Password)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info("admin account created", slog.String("email", cfg.AdminBootstrap.Email))
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	sessions := session.New(cacheRedis, cfg.Session.TTL)

	memberService := memberservice.New(db, nil, logger)
	routineService := routineservice.New(db, nil, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		CookieName: cfg.Session.CookieName,
		Sessions:   sessions,
		Users:      db,
		Auth:       authService,
		Members:    memberService,
		Routines:   routineService,
	})

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

// Run запускает сервер и ждёт либо его падения, либо отмены
// контекста; на отмену сервер гасится с небольшим дедлайном.
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
		return err
	}
}

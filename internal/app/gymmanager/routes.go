// Package gymmanager предоставляет маршруты приложения.
package gymmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/andresnova/gym-manager/internal/http/handlers/auth/logout"
	"github.com/andresnova/gym-manager/internal/http/handlers/auth/portal"
	exerciseremove "github.com/andresnova/gym-manager/internal/http/handlers/exercise/remove"
	memberdetail "github.com/andresnova/gym-manager/internal/http/handlers/member/detail"
	memberlist "github.com/andresnova/gym-manager/internal/http/handlers/member/list"
	memberremove "github.com/andresnova/gym-manager/internal/http/handlers/member/remove"
	membersubscription "github.com/andresnova/gym-manager/internal/http/handlers/member/subscription"
	routinecreate "github.com/andresnova/gym-manager/internal/http/handlers/routine/create"
	routineedit "github.com/andresnova/gym-manager/internal/http/handlers/routine/edit"
	routinelist "github.com/andresnova/gym-manager/internal/http/handlers/routine/list"
	routineremove "github.com/andresnova/gym-manager/internal/http/handlers/routine/remove"
	routineview "github.com/andresnova/gym-manager/internal/http/handlers/routine/view"
	"github.com/andresnova/gym-manager/internal/http/middlewarectx"
	"github.com/andresnova/gym-manager/internal/services/auth"
	memberservice "github.com/andresnova/gym-manager/internal/services/member"
	routineservice "github.com/andresnova/gym-manager/internal/services/routine"
	"github.com/andresnova/gym-manager/internal/session"
	"github.com/andresnova/gym-manager/internal/storage/repository"
)

// Deps — зависимости маршрутов.
type Deps struct {
	CookieName string
	Sessions   *session.Manager
	Users      *repository.Storage
	Auth       *auth.Service
	Members    *memberservice.Service
	Routines   *routineservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.RateLimitMiddleware(logger),
	)

	portalHandler := portal.New(logger, deps.Auth, deps.Sessions, deps.CookieName)

	// Открытые конечные точки
	r.Get("/", portalHandler.ServeGet)
	r.Post("/", portalHandler.ServeHTTP)

	// Группа с сессионной аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(deps.CookieName, deps.Sessions, deps.Users, logger))

		r.Get("/logout", logout.New(logger, deps.Sessions, deps.CookieName).ServeHTTP)

		myRoutines := routinelist.New(logger, deps.Routines)
		r.Get("/dashboard", myRoutines.ServeHTTP)
		r.Get("/mis_rutinas", myRoutines.ServeHTTP)
		r.Get("/routine/{id}", routineview.New(logger, deps.Routines).ServeHTTP)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/", memberlist.New(logger, deps.Members).ServeHTTP)
			r.Get("/user/{id}", memberdetail.New(logger, deps.Members, deps.Routines).ServeHTTP)
			r.Post("/user/{id}/subscription", membersubscription.New(logger, deps.Members).ServeHTTP)
			r.Post("/user/{id}/delete", memberremove.New(logger, deps.Members).ServeHTTP)

			createHandler := routinecreate.New(logger, deps.Routines, deps.Members)
			r.Get("/user/{id}/routine/new", createHandler.ServeGet)
			r.Post("/user/{id}/routine/new", createHandler.ServeHTTP)

			editHandler := routineedit.New(logger, deps.Routines)
			r.Get("/routine/{id}/edit", editHandler.ServeGet)
			r.Post("/routine/{id}/edit", editHandler.ServeHTTP)
			r.Post("/routine/{id}/delete", routineremove.New(logger, deps.Routines).ServeHTTP)
			r.Post("/exercise/{id}/delete", exerciseremove.New(logger, deps.Routines).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

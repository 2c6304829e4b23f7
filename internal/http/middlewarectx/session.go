// Package middlewarectx содержит HTTP middleware обработки сессий.
//
// SessionMiddleware читает сессионную cookie, находит сессию в
// хранилище и кладёт загруженного пользователя в контекст запроса.
// Запрос без действующей сессии перенаправляется на страницу входа.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/andresnova/gym-manager/internal/lib/sl"
	"github.com/andresnova/gym-manager/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Actor — ключ аутентифицированного пользователя в контексте.
const Actor Key = "actor"

// SessionResolver находит пользователя по токену сессии.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// ActorProvider загружает пользователя из хранилища.
type ActorProvider interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// ActorFromContext достаёт пользователя, положенного middleware.
func ActorFromContext(ctx context.Context) *models.User {
	actor, _ := ctx.Value(Actor).(*models.User)
	return actor
}

// SessionMiddleware возвращает middleware, требующий действующую сессию.
//
// Отсутствие или недействительность cookie — не жёсткий отказ:
// браузер отправляется на "/" (страницу входа) кодом 303.
func SessionMiddleware(cookieName string, sessions SessionResolver, users ActorProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Session"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			userID, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				log.Info("stale session token")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			actor, err := users.GetUser(r.Context(), userID)
			if err != nil {
				// Пользователь удалён, сессия осталась.
				log.Warn("session points to a missing user", sl.Err(err))
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), Actor, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Package logout закрывает сессию и возвращает на страницу входа.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/andresnova/gym-manager/internal/lib/sl"
)

// SessionDestroyer уничтожает сессию по токену.
type SessionDestroyer interface {
	Destroy(ctx context.Context, token string) error
}

// Handler обрабатывает GET /logout.
type Handler struct {
	log        *slog.Logger
	sessions   SessionDestroyer
	cookieName string
}

// New создает новый Handler.
func New(log *slog.Logger, sessions SessionDestroyer, cookieName string) *Handler {
	return &Handler{log: log, sessions: sessions, cookieName: cookieName}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.log.Warn("failed to destroy session", slog.String("op", op), sl.Err(err))
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Package list реализует административный список клиентов зала.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andresnova/gym-manager/internal/http/middlewarectx"
	"github.com/andresnova/gym-manager/internal/http/response"
	"github.com/andresnova/gym-manager/internal/lib/sl"
	"github.com/andresnova/gym-manager/internal/models"
)

// Service описывает интерфейс бизнес-логики списка клиентов.
type Service interface {
	List(ctx context.Context, actor *models.User) ([]*models.User, error)
}

// Handler обрабатывает GET /admin.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

type memberItem struct {
	ID        int64     `json:"id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor := middlewarectx.ActorFromContext(r.Context())
	members, err := h.service.List(r.Context(), actor)
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	items := make([]memberItem, 0, len(members))
	for _, m := range members {
		items = append(items, memberItem{
			ID:        m.ID,
			ClientID:  m.ClientID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			CreatedAt: m.CreatedAt,
		})
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"members": items,
	}))
}

// Package list отдаёт клиенту его собственные программы.
// Один обработчик обслуживает /dashboard и /mis_rutinas.
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

// Service описывает интерфейс бизнес-логики списка программ.
type Service interface {
	ListByMember(ctx context.Context, actor *models.User, memberID int64) ([]*models.Routine, error)
}

// Handler обрабатывает GET /dashboard и GET /mis_rutinas.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

type routineItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.routine.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor := middlewarectx.ActorFromContext(r.Context())
	if actor == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	routines, err := h.service.ListByMember(r.Context(), actor, actor.ID)
	if err != nil {
		log.Error("failed to list routines", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	items := make([]routineItem, 0, len(routines))
	for _, rt := range routines {
		items = append(items, routineItem{
			ID:          rt.ID,
			Title:       rt.Title,
			Description: rt.Description,
			CreatedAt:   rt.CreatedAt,
			CreatedBy:   rt.CreatedBy,
		})
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"routines": items,
	}))
}

// Package remove реализует удаление одного упражнения.
// Ответ машиночитаемый: {"ok": true} внутри стандартного конверта.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andresnova/gym-manager/internal/http/middlewarectx"
	"github.com/andresnova/gym-manager/internal/http/response"
	"github.com/andresnova/gym-manager/internal/lib/sl"
	"github.com/andresnova/gym-manager/internal/models"
)

// Service описывает интерфейс бизнес-логики удаления упражнения.
type Service interface {
	DeleteExercise(ctx context.Context, actor *models.User, id int64) error
}

// Handler обрабатывает POST /admin/exercise/{id}/delete.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.exercise.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	actor := middlewarectx.ActorFromContext(r.Context())
	if err := h.service.DeleteExercise(r.Context(), actor, id); err != nil {
		log.Error("failed to delete exercise", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"ok": true,
	}))
}

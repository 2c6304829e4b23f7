// Package remove реализует удаление клиента администратором.
//
// Удаление каскадно убирает программы и упражнения клиента.
// Попытка удалить собственную учётную запись отклоняется
// предупреждением, учётная запись остаётся.
package remove

import (
	"context"
	"errors"
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
	"github.com/andresnova/gym-manager/internal/services/member"
)

// Service описывает интерфейс бизнес-логики удаления клиента.
type Service interface {
	Delete(ctx context.Context, actor *models.User, id int64) error
}

// Handler обрабатывает POST /admin/user/{id}/delete.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.remove"
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
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		if errors.Is(err, member.ErrSelfDelete) {
			// Не фатально: предупреждаем, запись не тронута.
			log.Info("self-delete refused", slog.Int64("member_id", id))
			render.JSON(w, r, response.Warning("you cannot delete your own account"))
			return
		}
		log.Error("failed to delete member", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("member deleted", slog.Int64("member_id", id))
	render.JSON(w, r, response.OK())
}

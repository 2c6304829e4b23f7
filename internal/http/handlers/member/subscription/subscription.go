// Package subscription реализует обновление абонемента клиента.
//
// Оба поля формы опциональны и разбираются независимо; значение,
// которое не удалось разобрать, молча пропускается — семантика
// частичного обновления.
package subscription

import (
	"context"
	"encoding/json"
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

// Service описывает интерфейс бизнес-логики обновления абонемента.
type Service interface {
	UpdateSubscription(ctx context.Context, actor *models.User, id int64, req models.DummySubscription) error
}

// Handler обрабатывает POST /admin/user/{id}/subscription.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.subscription"
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

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	actor := middlewarectx.ActorFromContext(r.Context())
	if err := h.service.UpdateSubscription(r.Context(), actor, id, req); err != nil {
		log.Error("failed to update subscription", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("subscription saved", slog.Int64("member_id", id))
	render.JSON(w, r, response.OK())
}

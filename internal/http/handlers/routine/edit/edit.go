// Package edit реализует редактирование названия и описания программы.
// Упражнения этой операцией не затрагиваются.
package edit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andresnova/gym-manager/internal/http/middlewarectx"
	"github.com/andresnova/gym-manager/internal/http/response"
	"github.com/andresnova/gym-manager/internal/lib/sl"
	"github.com/andresnova/gym-manager/internal/models"
	"github.com/andresnova/gym-manager/internal/services/routine"
)

// Service описывает интерфейс бизнес-логики редактирования программы.
type Service interface {
	Get(ctx context.Context, actor *models.User, id int64) (*routine.View, error)
	Update(ctx context.Context, actor *models.User, id int64, title, description string) error
}

// Handler обрабатывает GET и POST /admin/routine/{id}/edit.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

type editRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// ServeGet отдаёт текущую программу с упражнениями для формы.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.routine.edit.form"
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
	view, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		log.Error("failed to read routine", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"routine":   view.Routine,
		"exercises": view.Exercises,
	}))
}

// ServeHTTP обрабатывает POST.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.routine.edit"
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

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actor := middlewarectx.ActorFromContext(r.Context())
	if err := h.service.Update(r.Context(), actor, id, req.Title, req.Description); err != nil {
		log.Error("failed to update routine", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("routine updated", slog.Int64("id", id))
	render.JSON(w, r, response.OK())
}

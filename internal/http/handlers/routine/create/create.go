// Package create реализует создание тренировочной программы для клиента.
//
// GET возвращает карточку клиента с остатком дней абонемента —
// данные для формы. POST принимает название, описание и пакет
// упражнений; программа создаётся только при активном абонементе.
// Непригодные записи пакета упражнений не мешают созданию, их
// количество возвращается в ответе.
package create

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
	"github.com/andresnova/gym-manager/internal/services/member"
	"github.com/andresnova/gym-manager/internal/services/routine"
)

// Service описывает интерфейс бизнес-логики создания программы.
type Service interface {
	Create(ctx context.Context, actor *models.User, memberID int64, req models.DummyRoutine) (*routine.CreateResult, error)
}

// MemberReader возвращает карточку клиента для GET-ветки.
type MemberReader interface {
	Get(ctx context.Context, actor *models.User, id int64) (*member.Detail, error)
}

// Handler обрабатывает GET и POST /admin/user/{id}/routine/new.
type Handler struct {
	log      *slog.Logger
	service  Service
	members  MemberReader
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, members MemberReader) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		members:  members,
		validate: validator.New(),
	}
}

// ServeGet отдаёт данные для формы: клиента и остаток дней.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.routine.create.form"
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
	detail, err := h.members.Get(r.Context(), actor, id)
	if err != nil {
		log.Error("failed to read member", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"member_id":      detail.User.ID,
		"member_name":    detail.User.Name,
		"remaining_days": detail.RemainingDays,
		"active":         detail.Active,
	}))
}

// ServeHTTP обрабатывает POST.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.routine.create"
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

	var req models.DummyRoutine
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
	result, err := h.service.Create(r.Context(), actor, id, req)
	if err != nil {
		log.Error("failed to create routine", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("routine created", slog.Int64("id", result.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":                result.ID,
		"exercises":         result.Exercises,
		"skipped_exercises": result.SkippedExercises,
	}))
}

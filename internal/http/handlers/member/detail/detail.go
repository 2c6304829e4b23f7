// Package detail реализует карточку клиента для администратора:
// данные учётной записи, вычисленный остаток дней абонемента
// и список программ клиента.
package detail

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andresnova/gym-manager/internal/http/middlewarectx"
	"github.com/andresnova/gym-manager/internal/http/response"
	"github.com/andresnova/gym-manager/internal/lib/sl"
	"github.com/andresnova/gym-manager/internal/models"
	"github.com/andresnova/gym-manager/internal/services/member"
)

// Service описывает интерфейс бизнес-логики карточки клиента.
type Service interface {
	Get(ctx context.Context, actor *models.User, id int64) (*member.Detail, error)
}

// RoutineLister возвращает программы клиента.
type RoutineLister interface {
	ListByMember(ctx context.Context, actor *models.User, memberID int64) ([]*models.Routine, error)
}

// Handler обрабатывает GET /admin/user/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	routines RoutineLister
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, routines RoutineLister) *Handler {
	return &Handler{log: log, service: service, routines: routines}
}

type routineItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.detail"
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
	detail, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		log.Error("failed to read member", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	routines, err := h.routines.ListByMember(r.Context(), actor, id)
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
			ID:        rt.ID,
			Title:     rt.Title,
			CreatedAt: rt.CreatedAt,
			CreatedBy: rt.CreatedBy,
		})
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"member": map[string]any{
			"id":                 detail.User.ID,
			"client_id":          detail.User.ClientID,
			"name":               detail.User.Name,
			"email":              detail.User.Email,
			"phone":              detail.User.Phone,
			"subscription_start": detail.User.SubscriptionStart,
			"subscription_days":  detail.User.SubscriptionDays,
		},
		"remaining_days": detail.RemainingDays,
		"active":         detail.Active,
		"routines":       items,
	}))
}

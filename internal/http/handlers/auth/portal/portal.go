// Package portal реализует комбинированную точку входа и регистрации.
//
// GET отдаёт заготовку страницы входа; POST разбирает поле form_type
// и ведёт либо ветку входа, либо ветку регистрации. Успешный вход
// открывает сессию и кладёт её токен в cookie.
package portal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andresnova/gym-manager/internal/http/response"
	"github.com/andresnova/gym-manager/internal/lib/sl"
	"github.com/andresnova/gym-manager/internal/models"
)

// AuthService описывает интерфейс бизнес-логики входа и регистрации.
type AuthService interface {
	Login(ctx context.Context, email, rawPassword string) (*models.User, error)
	Register(ctx context.Context, name, email, phone, rawPassword string) (int64, error)
}

// SessionCreator открывает сессию и возвращает её токен.
type SessionCreator interface {
	Create(ctx context.Context, userID int64) (string, error)
}

// Handler управляет HTTP-запросами точки входа.
type Handler struct {
	log        *slog.Logger
	auth       AuthService
	sessions   SessionCreator
	cookieName string
	validate   *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, auth AuthService, sessions SessionCreator, cookieName string) *Handler {
	return &Handler{
		log:        log,
		auth:       auth,
		sessions:   sessions,
		cookieName: cookieName,
		validate:   validator.New(),
	}
}

// ServeGet отвечает на GET /: аутентификации ещё нет, клиент
// показывает форму входа и регистрации.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"forms": []string{"login", "register"},
	}))
}

// ServeHTTP обрабатывает POST /.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.portal"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPortal
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

	switch req.FormType {
	case "login":
		h.login(w, r, log, req)
	case "register":
		h.register(w, r, log, req)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, log *slog.Logger, req models.DummyPortal) {
	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Info("login rejected", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to open session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not open a session"))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	redirect := "/dashboard"
	if user.IsAdmin() {
		redirect = "/admin"
	}
	log.Info("login succeeded", slog.Int64("user_id", user.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"role":     user.Role,
		"redirect": redirect,
	}))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, log *slog.Logger, req models.DummyPortal) {
	if strings.TrimSpace(req.Name) == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Warning("name is required"))
		return
	}

	id, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		log.Info("registration rejected", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("member registered", slog.Int64("user_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}

package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andresnova/gym-manager/internal/apperr"
	"github.com/andresnova/gym-manager/internal/http/response"
	"github.com/andresnova/gym-manager/internal/models"
)

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) Login(ctx context.Context, email, rawPassword string) (*models.User, error) {
	args := m.Called(ctx, email, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *AuthServiceMock) Register(ctx context.Context, name, email, phone, rawPassword string) (int64, error) {
	args := m.Called(ctx, name, email, phone, rawPassword)
	return args.Get(0).(int64), args.Error(1)
}

type SessionCreatorMock struct{ mock.Mock }

func (m *SessionCreatorMock) Create(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const cookieName = "gym_session"

func postJSON(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHandler_Login(t *testing.T) {
	t.Run("member lands on the dashboard", func(t *testing.T) {
		auth := new(AuthServiceMock)
		auth.On("Login", mock.Anything, "ana@example.com", "secret123").
			Return(&models.User{ID: 7, Role: models.RoleMember}, nil).Once()
		sessions := new(SessionCreatorMock)
		sessions.On("Create", mock.Anything, int64(7)).Return("token-1", nil).Once()

		h := New(discardLogger(), auth, sessions, cookieName)
		rr := postJSON(t, h, models.DummyPortal{
			FormType: "login",
			Email:    "ana@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decode(t, rr)
		assert.Equal(t, response.StatusOK, resp.Status)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "/dashboard", data["redirect"])

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, cookieName, cookies[0].Name)
		assert.Equal(t, "token-1", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		auth.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("admin lands on the admin panel", func(t *testing.T) {
		auth := new(AuthServiceMock)
		auth.On("Login", mock.Anything, "admin@example.com", "secret123").
			Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil).Once()
		sessions := new(SessionCreatorMock)
		sessions.On("Create", mock.Anything, int64(1)).Return("token-2", nil).Once()

		h := New(discardLogger(), auth, sessions, cookieName)
		rr := postJSON(t, h, models.DummyPortal{
			FormType: "login",
			Email:    "admin@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		data := decode(t, rr).Data.(map[string]any)
		assert.Equal(t, "/admin", data["redirect"])
	})

	t.Run("bad credentials answer with a warning", func(t *testing.T) {
		auth := new(AuthServiceMock)
		auth.On("Login", mock.Anything, "ana@example.com", "wrong").
			Return(nil, apperr.Validation("incorrect email or password")).Once()
		sessions := new(SessionCreatorMock)

		h := New(discardLogger(), auth, sessions, cookieName)
		rr := postJSON(t, h, models.DummyPortal{
			FormType: "login",
			Email:    "ana@example.com",
			Password: "wrong",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		resp := decode(t, rr)
		assert.Equal(t, response.StatusWarning, resp.Status)
		assert.Equal(t, "incorrect email or password", resp.Warning)
		assert.Empty(t, rr.Result().Cookies())
		sessions.AssertNotCalled(t, "Create")
	})
}

func TestHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		auth := new(AuthServiceMock)
		auth.On("Register", mock.Anything, "Ana", "ana@example.com", "3001234567", "secret123").
			Return(int64(7), nil).Once()

		h := New(discardLogger(), auth, new(SessionCreatorMock), cookieName)
		rr := postJSON(t, h, models.DummyPortal{
			FormType: "register",
			Name:     "Ana",
			Email:    "ana@example.com",
			Phone:    "3001234567",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		data := decode(t, rr).Data.(map[string]any)
		assert.EqualValues(t, 7, data["id"])
		auth.AssertExpectations(t)
	})

	t.Run("blank name", func(t *testing.T) {
		auth := new(AuthServiceMock)
		h := New(discardLogger(), auth, new(SessionCreatorMock), cookieName)
		rr := postJSON(t, h, models.DummyPortal{
			FormType: "register",
			Name:     "  ",
			Email:    "ana@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		resp := decode(t, rr)
		assert.Equal(t, response.StatusWarning, resp.Status)
		assert.Equal(t, "name is required", resp.Warning)
		auth.AssertNotCalled(t, "Register")
	})

	t.Run("duplicate email", func(t *testing.T) {
		auth := new(AuthServiceMock)
		auth.On("Register", mock.Anything, "Ana", "ana@example.com", "", "secret123").
			Return(int64(0), apperr.Validation("email is already registered")).Once()

		h := New(discardLogger(), auth, new(SessionCreatorMock), cookieName)
		rr := postJSON(t, h, models.DummyPortal{
			FormType: "register",
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "email is already registered", decode(t, rr).Warning)
	})
}

func TestHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body models.DummyPortal
	}{
		{name: "unknown form type", body: models.DummyPortal{FormType: "reset", Email: "a@b.c", Password: "x"}},
		{name: "missing email", body: models.DummyPortal{FormType: "login", Password: "x"}},
		{name: "malformed email", body: models.DummyPortal{FormType: "login", Email: "not-an-email", Password: "x"}},
		{name: "missing password", body: models.DummyPortal{FormType: "login", Email: "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(discardLogger(), new(AuthServiceMock), new(SessionCreatorMock), cookieName)
			rr := postJSON(t, h, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Equal(t, response.StatusError, decode(t, rr).Status)
		})
	}
}

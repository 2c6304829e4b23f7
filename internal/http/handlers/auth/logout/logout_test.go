package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SessionDestroyerMock struct{ mock.Mock }

func (m *SessionDestroyerMock) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const cookieName = "gym_session"

func TestHandler(t *testing.T) {
	t.Run("destroys the session and clears the cookie", func(t *testing.T) {
		sessions := new(SessionDestroyerMock)
		sessions.On("Destroy", mock.Anything, "token-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "token-1"})
		rr := httptest.NewRecorder()
		New(discardLogger(), sessions, cookieName).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, cookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
		sessions.AssertExpectations(t)
	})

	t.Run("no cookie still redirects", func(t *testing.T) {
		sessions := new(SessionDestroyerMock)

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		rr := httptest.NewRecorder()
		New(discardLogger(), sessions, cookieName).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		sessions.AssertNotCalled(t, "Destroy")
	})

	t.Run("store failure does not block the redirect", func(t *testing.T) {
		sessions := new(SessionDestroyerMock)
		sessions.On("Destroy", mock.Anything, "token-1").
			Return(errors.New("redis down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "token-1"})
		rr := httptest.NewRecorder()
		New(discardLogger(), sessions, cookieName).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
	})
}

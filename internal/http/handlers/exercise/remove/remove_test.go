package remove

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andresnova/gym-manager/internal/apperr"
	"github.com/andresnova/gym-manager/internal/http/middlewarectx"
	"github.com/andresnova/gym-manager/internal/http/response"
	"github.com/andresnova/gym-manager/internal/models"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) DeleteExercise(ctx context.Context, actor *models.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var admin = &models.User{ID: 1, Role: models.RoleAdmin}

func doRequest(h http.Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/exercise/"+id+"/delete", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.Actor, admin)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req.WithContext(ctx))
	return rr
}

func TestHandler(t *testing.T) {
	t.Run("success answers machine-readable ok", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("DeleteExercise", mock.Anything, admin, int64(7)).Return(nil).Once()

		rr := doRequest(New(discardLogger(), svc), "7")

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)
		data := resp.Data.(map[string]any)
		assert.Equal(t, true, data["ok"])
		svc.AssertExpectations(t)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("DeleteExercise", mock.Anything, admin, int64(99)).
			Return(apperr.NotFound("exercise not found")).Once()

		rr := doRequest(New(discardLogger(), svc), "99")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		svc := new(ServiceMock)
		rr := doRequest(New(discardLogger(), svc), "abc")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "DeleteExercise")
	})
}

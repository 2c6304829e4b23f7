package view

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
	"github.com/andresnova/gym-manager/internal/services/routine"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Get(ctx context.Context, actor *models.User, id int64) (*routine.View, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*routine.View), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doRequest(h http.Handler, actor *models.User, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/routine/"+id, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.Actor, actor)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req.WithContext(ctx))
	return rr
}

func TestHandler(t *testing.T) {
	owner := &models.User{ID: 2, Role: models.RoleMember}

	t.Run("owner sees the routine with exercises", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Get", mock.Anything, owner, int64(5)).Return(&routine.View{
			Routine:   &models.Routine{ID: 5, Title: "Fuerza", UserID: 2},
			Exercises: []*models.Exercise{{ID: 1, Name: "Sentadilla"}},
		}, nil).Once()

		rr := doRequest(New(discardLogger(), svc), owner, "5")

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)
		svc.AssertExpectations(t)
	})

	t.Run("stranger gets forbidden", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Get", mock.Anything, owner, int64(5)).
			Return(nil, apperr.ErrForbidden).Once()

		rr := doRequest(New(discardLogger(), svc), owner, "5")
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("unknown routine", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Get", mock.Anything, owner, int64(99)).
			Return(nil, apperr.NotFound("routine not found")).Once()

		rr := doRequest(New(discardLogger(), svc), owner, "99")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		svc := new(ServiceMock)
		rr := doRequest(New(discardLogger(), svc), owner, "abc")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Get")
	})
}

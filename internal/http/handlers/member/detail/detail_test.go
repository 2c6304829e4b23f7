package detail

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
	"github.com/andresnova/gym-manager/internal/services/member"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Get(ctx context.Context, actor *models.User, id int64) (*member.Detail, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Detail), args.Error(1)
}

type RoutineListerMock struct{ mock.Mock }

func (m *RoutineListerMock) ListByMember(ctx context.Context, actor *models.User, memberID int64) ([]*models.Routine, error) {
	args := m.Called(ctx, actor, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Routine), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var admin = &models.User{ID: 1, Role: models.RoleAdmin}

func doRequest(h http.Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/user/"+id, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.Actor, admin)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req.WithContext(ctx))
	return rr
}

func TestHandler(t *testing.T) {
	t.Run("member card with status and routines", func(t *testing.T) {
		remaining := 12
		svc := new(ServiceMock)
		svc.On("Get", mock.Anything, admin, int64(2)).Return(&member.Detail{
			User:          &models.User{ID: 2, ClientID: "10000001", Name: "Ana", Email: "ana@example.com"},
			RemainingDays: &remaining,
			Active:        true,
		}, nil).Once()
		routines := new(RoutineListerMock)
		routines.On("ListByMember", mock.Anything, admin, int64(2)).
			Return([]*models.Routine{{ID: 5, Title: "Fuerza", CreatedBy: "Admin"}}, nil).Once()

		rr := doRequest(New(discardLogger(), svc, routines), "2")

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)

		data := resp.Data.(map[string]any)
		assert.EqualValues(t, 12, data["remaining_days"])
		assert.Equal(t, true, data["active"])
		memberData := data["member"].(map[string]any)
		assert.Equal(t, "10000001", memberData["client_id"])
		list := data["routines"].([]any)
		require.Len(t, list, 1)
		svc.AssertExpectations(t)
		routines.AssertExpectations(t)
	})

	t.Run("unknown member", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Get", mock.Anything, admin, int64(99)).
			Return(nil, apperr.NotFound("member not found")).Once()
		routines := new(RoutineListerMock)

		rr := doRequest(New(discardLogger(), svc, routines), "99")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		routines.AssertNotCalled(t, "ListByMember")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		svc := new(ServiceMock)
		rr := doRequest(New(discardLogger(), svc, new(RoutineListerMock)), "abc")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Get")
	})
}

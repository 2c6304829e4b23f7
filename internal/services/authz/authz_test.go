package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andresnova/gym-manager/internal/apperr"
	"github.com/andresnova/gym-manager/internal/models"
)

func TestRequireActor(t *testing.T) {
	assert.ErrorIs(t, RequireActor(nil), apperr.ErrUnauthorized)
	assert.NoError(t, RequireActor(&models.User{ID: 1, Role: models.RoleMember}))
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		actor   *models.User
		wantErr error
	}{
		{name: "nil actor is unauthorized", actor: nil, wantErr: apperr.ErrUnauthorized},
		{name: "member is forbidden", actor: &models.User{ID: 2, Role: models.RoleMember}, wantErr: apperr.ErrForbidden},
		{name: "admin passes", actor: &models.User{ID: 1, Role: models.RoleAdmin}, wantErr: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAdmin(tt.actor)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	owner := &models.User{ID: 7, Role: models.RoleMember}
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	stranger := &models.User{ID: 8, Role: models.RoleMember}

	assert.ErrorIs(t, RequireOwnerOrAdmin(nil, 7), apperr.ErrUnauthorized)
	assert.NoError(t, RequireOwnerOrAdmin(owner, 7))
	assert.NoError(t, RequireOwnerOrAdmin(admin, 7))
	assert.ErrorIs(t, RequireOwnerOrAdmin(stranger, 7), apperr.ErrForbidden)
}

package service

import (
	"context"
	"testing"

	"FleetOps/internal/config"
	"FleetOps/internal/modules/user/application/dto/request"
	"FleetOps/internal/modules/user/domain/entity"
	"FleetOps/pkg/util/myjwt"
	"FleetOps/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProfileRepo struct {
	byEmail map[string]entity.Profile
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	for _, p := range f.byEmail {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	p, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProfileRepo) ListByRoles(ctx context.Context, roles []string) ([]entity.Profile, error) {
	return nil, nil
}

func TestLoginIssuesTokenWithRole(t *testing.T) {
	config.GetConfig().JwtConfig.Key = "test-key"
	repo := &fakeProfileRepo{byEmail: map[string]entity.Profile{
		"olivia@fleet.io": {ID: "p-1", FullName: "Olivia", Role: entity.RoleOwner, Email: "olivia@fleet.io"},
	}}
	svc := NewProfileService(repo)

	resp, err := svc.Login(context.Background(), request.LoginRequest{Email: " Olivia@Fleet.io "})
	require.NoError(t, err)
	assert.Equal(t, "p-1", resp.ID)

	claims, err := myjwt.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "p-1", claims.Uuid)
	assert.Equal(t, entity.RoleOwner, claims.Role)
}

func TestLoginUnknownProfile(t *testing.T) {
	config.GetConfig().JwtConfig.Key = "test-key"
	svc := NewProfileService(&fakeProfileRepo{byEmail: map[string]entity.Profile{}})

	_, err := svc.Login(context.Background(), request.LoginRequest{Email: "nobody@fleet.io"})
	var ce *xerr.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, xerr.Unauthorized, ce.Code)
}

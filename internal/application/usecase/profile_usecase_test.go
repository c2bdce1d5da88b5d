package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

type profileStore struct {
	byID map[string]*entity.UserProfile
}

func (s *profileStore) Create(_ context.Context, p *entity.UserProfile) error {
	s.byID[p.ID] = p
	return nil
}

func (s *profileStore) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	return s.byID[id], nil
}

func (s *profileStore) GetByEmail(_ context.Context, email string) (*entity.UserProfile, error) {
	return nil, nil
}

func (s *profileStore) List(_ context.Context, status string, limit, offset int) ([]*entity.UserProfile, error) {
	out := []*entity.UserProfile{}
	for _, p := range s.byID {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *profileStore) UpdateAccess(_ context.Context, id, status string, canSeePrices bool) (*entity.UserProfile, error) {
	p := s.byID[id]
	p.Status, p.CanSeePrices = status, canSeePrices
	return p, nil
}

func newProfiles() *profileStore {
	return &profileStore{byID: map[string]*entity.UserProfile{
		"adm": {ID: "adm", Role: entity.RoleAdmin, Status: entity.ProfileStatusAuthorized, CanSeePrices: true},
		"c1":  {ID: "c1", Role: entity.RoleSolicitante, Status: entity.ProfileStatusPending},
	}}
}

func TestProfileUseCase_AprobarYRevocar(t *testing.T) {
	uc := usecase.NewProfileUseCase(newProfiles())
	ctx := context.Background()

	out, err := uc.Approve(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileStatusAuthorized, out.Status)
	assert.True(t, out.CanSeePrices)

	out, err = uc.Revoke(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileStatusPending, out.Status)
	assert.False(t, out.CanSeePrices)
}

func TestProfileUseCase_NoSeRevocaAlAdmin(t *testing.T) {
	uc := usecase.NewProfileUseCase(newProfiles())
	_, err := uc.Revoke(context.Background(), "adm")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProfileUseCase_Inexistente(t *testing.T) {
	uc := usecase.NewProfileUseCase(newProfiles())
	_, err := uc.Approve(context.Background(), "nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileUseCase_ListPendientes(t *testing.T) {
	uc := usecase.NewProfileUseCase(newProfiles())
	out, err := uc.List(context.Background(), dto.ProfileListRequest{Status: entity.ProfileStatusPending})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "c1", out.Items[0].ID)
	assert.Equal(t, 20, out.Page.Limit, "límite por defecto")
}

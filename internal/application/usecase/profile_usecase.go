package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProfileUseCase operaciones del administrador sobre perfiles de acceso.
type ProfileUseCase struct {
	repo repository.ProfileRepository
}

// NewProfileUseCase construye el caso de uso con el puerto de persistencia.
func NewProfileUseCase(repo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{repo: repo}
}

// List devuelve los perfiles, opcionalmente sólo los de un estado.
func (uc *ProfileUseCase) List(ctx context.Context, in dto.ProfileListRequest) (*dto.ProfileListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *auth.ToUserResponse(p))
	}
	return &dto.ProfileListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Approve autoriza al usuario a ver precios mayoristas.
func (uc *ProfileUseCase) Approve(ctx context.Context, id string) (*dto.UserResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	p, err := uc.repo.UpdateAccess(ctx, id, entity.ProfileStatusAuthorized, true)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(p), nil
}

// Revoke vuelve el perfil a pendiente sin acceso a precios. El administrador no se puede revocar.
func (uc *ProfileUseCase) Revoke(ctx context.Context, id string) (*dto.UserResponse, error) {
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Role == entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	p, err := uc.repo.UpdateAccess(ctx, id, entity.ProfileStatusPending, false)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(p), nil
}

func (uc *ProfileUseCase) get(ctx context.Context, id string) (*entity.UserProfile, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

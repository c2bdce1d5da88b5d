package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
)

// GroupUseCase casos de uso de grupos.
type GroupUseCase struct {
	factory *catalog.Factory
}

// NewGroupUseCase construye el caso de uso.
func NewGroupUseCase(factory *catalog.Factory) *GroupUseCase {
	return &GroupUseCase{factory: factory}
}

// List devuelve los grupos con "Sin grupo" primero.
func (uc *GroupUseCase) List(ctx context.Context, s catalog.Session) (*dto.GroupListResponse, error) {
	names, err := uc.factory.For(s).ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.GroupListResponse{Items: names}, nil
}

// Create agrega un grupo con el nombre capitalizado.
func (uc *GroupUseCase) Create(ctx context.Context, s catalog.Session, in dto.CreateGroupRequest) (string, error) {
	return uc.factory.For(s).CreateGroup(ctx, Capitalize(in.Name))
}

// Delete elimina el grupo.
func (uc *GroupUseCase) Delete(ctx context.Context, s catalog.Session, name string) error {
	return uc.factory.For(s).DeleteGroup(ctx, name)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.GroupRepository = (*GroupRepo)(nil)

// GroupRepo implementación del puerto GroupRepository sobre la tabla grupos.
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador.
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

// ListByUser lista los grupos del usuario ordenados por nombre.
func (r *GroupRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Group, error) {
	rows, err := r.q.Query(ctx,
		`SELECT user_id::text, nombre FROM grupos WHERE user_id = $1 ORDER BY nombre COLLATE "C"`, userID)
	if err != nil {
		return nil, remoteErr("list grupos", err)
	}
	defer rows.Close()

	list := make([]*entity.Group, 0)
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.UserID, &g.Name); err != nil {
			return nil, remoteErr("scan grupo", err)
		}
		list = append(list, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr("list grupos", err)
	}
	return list, nil
}

// Create inserta el grupo; el nombre es único por usuario.
func (r *GroupRepo) Create(ctx context.Context, g *entity.Group) (*entity.Group, error) {
	_, err := r.q.Exec(ctx, `INSERT INTO grupos (user_id, nombre) VALUES ($1, $2)`, g.UserID, g.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert grupo: %w: %w", domain.ErrBackend, domain.ErrDuplicate)
		}
		return nil, remoteErr("insert grupo", err)
	}
	return &entity.Group{UserID: g.UserID, Name: g.Name}, nil
}

// Delete elimina el grupo por nombre.
func (r *GroupRepo) Delete(ctx context.Context, userID, name string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM grupos WHERE user_id = $1 AND nombre = $2`, userID, name); err != nil {
		return remoteErr("delete grupo", err)
	}
	return nil
}

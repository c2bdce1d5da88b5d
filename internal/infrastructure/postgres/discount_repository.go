package postgres

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

// DiscountRepo implementación sobre descuentos_marca (una fila por usuario y marca).
type DiscountRepo struct {
	q Querier
}

// NewDiscountRepository construye el adaptador.
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

// ListByUser lista los descuentos del usuario ordenados por marca.
func (r *DiscountRepo) ListByUser(ctx context.Context, userID string) ([]*entity.BrandDiscount, error) {
	rows, err := r.q.Query(ctx,
		`SELECT user_id::text, marca, porcentaje FROM descuentos_marca WHERE user_id = $1 ORDER BY marca COLLATE "C"`, userID)
	if err != nil {
		return nil, remoteErr("list descuentos", err)
	}
	defer rows.Close()

	list := make([]*entity.BrandDiscount, 0)
	for rows.Next() {
		var d entity.BrandDiscount
		if err := rows.Scan(&d.UserID, &d.Brand, &d.Percent); err != nil {
			return nil, remoteErr("scan descuento", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr("list descuentos", err)
	}
	return list, nil
}

// Upsert inserta o reemplaza el porcentaje de la marca.
func (r *DiscountRepo) Upsert(ctx context.Context, d *entity.BrandDiscount) (*entity.BrandDiscount, error) {
	var saved entity.BrandDiscount
	err := r.q.QueryRow(ctx, `
		INSERT INTO descuentos_marca (user_id, marca, porcentaje, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, marca) DO UPDATE
		SET porcentaje = EXCLUDED.porcentaje, updated_at = NOW()
		RETURNING user_id::text, marca, porcentaje`,
		d.UserID, d.Brand, d.Percent,
	).Scan(&saved.UserID, &saved.Brand, &saved.Percent)
	if err != nil {
		return nil, remoteErr("upsert descuento", err)
	}
	return &saved, nil
}

// Delete elimina el descuento de la marca.
func (r *DiscountRepo) Delete(ctx context.Context, userID, brand string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM descuentos_marca WHERE user_id = $1 AND marca = $2`, userID, brand); err != nil {
		return remoteErr("delete descuento", err)
	}
	return nil
}

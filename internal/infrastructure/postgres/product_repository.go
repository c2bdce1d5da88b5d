package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id::text, user_id::text, nombre, marca, codigo, cantidad,
	COALESCE(grupo, ''), COALESCE(foto, ''), faltante, visible, precio_mayorista`

// ProductRepo implementación del puerto ProductRepository sobre la tabla productos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// ListByUser lista los productos del usuario ordenados por marca y nombre (orden de bytes).
func (r *ProductRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM productos
		WHERE user_id = $1
		ORDER BY marca COLLATE "C", nombre COLLATE "C", id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, remoteErr("list productos", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, remoteErr("scan producto", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr("list productos", err)
	}
	return list, nil
}

// Create inserta el producto y devuelve la fila con el ID asignado por el servidor.
func (r *ProductRepo) Create(ctx context.Context, userID string, p *entity.Product) (*entity.Product, error) {
	query := `
		INSERT INTO productos (user_id, nombre, marca, codigo, cantidad, grupo, foto, faltante, visible, precio_mayorista)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10)
		RETURNING ` + productColumns
	saved, err := scanProduct(r.q.QueryRow(ctx, query,
		userID, p.Name, p.Brand, p.Code, p.Quantity, p.Group, p.Photo, p.Missing, p.Visible, p.WholesalePrice,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert producto: %w: %w", domain.ErrBackend, domain.ErrDuplicate)
		}
		return nil, remoteErr("insert producto", err)
	}
	return saved, nil
}

// Update aplica sólo los campos presentes en el patch.
func (r *ProductRepo) Update(ctx context.Context, userID, id string, patch entity.ProductPatch) (*entity.Product, error) {
	numID, ok := parseID(id)
	if !ok {
		return nil, notFound("update producto", id)
	}

	sets := make([]string, 0, 9)
	args := []any{numID, userID}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("nombre", *patch.Name)
	}
	if patch.Brand != nil {
		add("marca", *patch.Brand)
	}
	if patch.Code != nil {
		add("codigo", *patch.Code)
	}
	if patch.Quantity != nil {
		add("cantidad", *patch.Quantity)
	}
	if patch.Group != nil {
		args = append(args, *patch.Group)
		sets = append(sets, fmt.Sprintf("grupo = NULLIF($%d, '')", len(args)))
	}
	if patch.Photo != nil {
		args = append(args, *patch.Photo)
		sets = append(sets, fmt.Sprintf("foto = NULLIF($%d, '')", len(args)))
	}
	if patch.Missing != nil {
		add("faltante", *patch.Missing)
	}
	if patch.Visible != nil {
		add("visible", *patch.Visible)
	}
	if patch.WholesalePrice != nil {
		add("precio_mayorista", *patch.WholesalePrice)
	}

	var query string
	if len(sets) == 0 {
		query = `SELECT ` + productColumns + ` FROM productos WHERE id = $1 AND user_id = $2`
	} else {
		query = `UPDATE productos SET ` + strings.Join(sets, ", ") + `, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + productColumns
	}

	updated, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("update producto", id)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update producto: %w: %w", domain.ErrBackend, domain.ErrDuplicate)
		}
		return nil, remoteErr("update producto", err)
	}
	return updated, nil
}

// Delete elimina el producto. Un ID inexistente no es error.
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) error {
	numID, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1 AND user_id = $2`, numID, userID); err != nil {
		return remoteErr("delete producto", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Brand, &p.Code, &p.Quantity,
		&p.Group, &p.Photo, &p.Missing, &p.Visible, &p.WholesalePrice,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

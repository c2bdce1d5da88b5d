package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `id::text, email, nombre, empresa, telefono, estado, role, puede_ver_precios, created_at, updated_at`

// ProfileRepo implementación del puerto ProfileRepository sobre user_profiles.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persiste el perfil de acceso de un usuario.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, email, nombre, empresa, telefono, estado, role, puede_ver_precios, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Email, p.Name, p.Company, p.Phone, p.Status, p.Role, p.CanSeePrices, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene el perfil por ID de usuario.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	return r.findOne(ctx, "id", id)
}

// GetByEmail obtiene el perfil por email.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	return r.findOne(ctx, "email", email)
}

// List devuelve perfiles, opcionalmente filtrados por estado, del más reciente al más antiguo.
func (r *ProfileRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.UserProfile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + profileColumns + ` FROM user_profiles
		WHERE ($1 = '' OR estado = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.UserProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateAccess cambia el estado y el permiso de ver precios.
func (r *ProfileRepo) UpdateAccess(ctx context.Context, id, status string, canSeePrices bool) (*entity.UserProfile, error) {
	query := `UPDATE user_profiles SET estado = $2, puede_ver_precios = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns
	p, err := scanProfile(r.q.QueryRow(ctx, query, id, status, canSeePrices))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update profile access: %w", err)
	}
	return p, nil
}

func (r *ProfileRepo) findOne(ctx context.Context, column, value string) (*entity.UserProfile, error) {
	p, err := scanProfile(r.q.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE `+column+` = $1`, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by %s: %w", column, err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*entity.UserProfile, error) {
	var p entity.UserProfile
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Company, &p.Phone, &p.Status, &p.Role,
		&p.CanSeePrices, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

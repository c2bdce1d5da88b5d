package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ConfigurationRepository = (*ConfigurationRepo)(nil)

// ConfigurationRepo implementación sobre configuracion_usuario (una fila por usuario).
type ConfigurationRepo struct {
	q Querier
}

// NewConfigurationRepository construye el adaptador.
func NewConfigurationRepository(q Querier) *ConfigurationRepo {
	return &ConfigurationRepo{q: q}
}

// Get devuelve la configuración del usuario.
func (r *ConfigurationRepo) Get(ctx context.Context, userID string) (*entity.UserConfiguration, error) {
	cfg, err := scanConfiguration(r.q.QueryRow(ctx, `
		SELECT user_id::text, stock_minimo, configuracion_carga
		FROM configuracion_usuario WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("get configuracion", userID)
		}
		return nil, remoteErr("get configuracion", err)
	}
	return cfg, nil
}

// Upsert inserta o reemplaza la configuración del usuario.
func (r *ConfigurationRepo) Upsert(ctx context.Context, cfg *entity.UserConfiguration) (*entity.UserConfiguration, error) {
	fields := cfg.LoadFormFields
	if fields == nil {
		fields = entity.DefaultConfiguration(cfg.UserID).LoadFormFields
	}
	saved, err := scanConfiguration(r.q.QueryRow(ctx, `
		INSERT INTO configuracion_usuario (user_id, stock_minimo, configuracion_carga, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET stock_minimo = EXCLUDED.stock_minimo,
		    configuracion_carga = EXCLUDED.configuracion_carga,
		    updated_at = NOW()
		RETURNING user_id::text, stock_minimo, configuracion_carga`,
		cfg.UserID, cfg.MinStockThreshold, fields,
	))
	if err != nil {
		return nil, remoteErr("upsert configuracion", err)
	}
	return saved, nil
}

func scanConfiguration(row pgx.Row) (*entity.UserConfiguration, error) {
	var (
		userID   string
		minStock int
		fields   map[string]bool
	)
	if err := row.Scan(&userID, &minStock, &fields); err != nil {
		return nil, err
	}
	cfg := entity.DefaultConfiguration(userID)
	cfg.MinStockThreshold = minStock
	for k, v := range fields {
		cfg.LoadFormFields[k] = v
	}
	return cfg, nil
}

package postgres

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// remoteErr clasifica un error del backend remoto: si Postgres respondió (PgError)
// es un rechazo (domain.ErrBackend); cualquier otra cosa es falta de conectividad
// (domain.ErrRemoteUnavailable).
func remoteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrRemoteUnavailable, err)
}

// notFound es el rechazo por fila inexistente.
func notFound(op, id string) error {
	return fmt.Errorf("%s %s: %w: %w", op, id, domain.ErrBackend, domain.ErrNotFound)
}

// parseID valida los IDs del servidor (bigserial). Los IDs locales no llegan a la base.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	return n, err == nil && n > 0
}

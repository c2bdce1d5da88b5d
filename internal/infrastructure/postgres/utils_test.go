package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

func TestRemoteErr_RechazoDelBackend(t *testing.T) {
	err := remoteErr("insertar producto", &pgconn.PgError{Code: "42501", Message: "permission denied"})

	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.NotErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.True(t, domain.IsRemoteFailure(err))
}

func TestRemoteErr_SinConectividad(t *testing.T) {
	for _, cause := range []error{context.DeadlineExceeded, errors.New("dial tcp: connection refused")} {
		err := remoteErr("listar productos", cause)
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		assert.NotErrorIs(t, err, domain.ErrBackend)
		assert.ErrorIs(t, err, cause, "conserva la causa")
	}
}

func TestNotFound(t *testing.T) {
	err := notFound("actualizar producto", "42")
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestParseID(t *testing.T) {
	n, ok := parseID("17")
	assert.True(t, ok)
	assert.Equal(t, int64(17), n)

	_, ok = parseID("local-0190a1b2")
	assert.False(t, ok, "los IDs locales nunca son IDs del servidor")
	_, ok = parseID("0")
	assert.False(t, ok)
}

package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// Los clasificadores deben reconocer el código SQLSTATE aunque el error venga
// envuelto por las capas del repo.
func TestClasificadoresSQLSTATE(t *testing.T) {
	fk := fmt.Errorf("insert notification: %w", &pgconn.PgError{
		Code:           codeForeignKeyViolation,
		ConstraintName: "notifications_user_id_fkey",
	})
	check := fmt.Errorf("update user: %w", &pgconn.PgError{
		Code:           codeCheckViolation,
		ConstraintName: "users_role_check",
	})

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(check))

	assert.True(t, isCheckViolation(check))
	assert.False(t, isCheckViolation(fk))
}

// Errores que no son de Postgres no deben clasificarse nunca.
func TestClasificadoresIgnoranErroresAjenos(t *testing.T) {
	plain := errors.New("dial tcp 10.0.0.5:5432: connection refused")

	assert.False(t, isForeignKeyViolation(plain))
	assert.False(t, isCheckViolation(plain))
	assert.False(t, isForeignKeyViolation(nil))
	assert.False(t, isCheckViolation(nil))
}

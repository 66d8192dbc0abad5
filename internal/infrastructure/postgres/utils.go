package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE de Postgres que los repos traducen a errores de dominio.
const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// isForeignKeyViolation verifica si un error es una violación de clave
// foránea (23503): la fila referenciada (p.ej. el user_id de una
// notificación) ya no existe.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isCheckViolation verifica si un error es una violación de CHECK (23514):
// un valor que la tabla rechaza, como un rol fuera del catálogo.
func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

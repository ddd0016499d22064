package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de violación de índice único.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta duplicados (código de lote, email de
// usuario) para que los repos los traduzcan a los sentinelas del
// dominio. El fallback por texto cubre errores ya envueltos que
// perdieron el *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), uniqueViolationCode)
}

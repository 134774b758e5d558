package postgres

import (
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE, который означает отказ политики доступа (RLS/привилегии), а не сбой БД.
const sqlStateInsufficientPrivilege = "42501"

// mapWriteErr — отказ политики доступа превращается в domain.ErrStoreMisconfigured,
// чтобы наружу не уходили детали хранилища.
func mapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateInsufficientPrivilege {
		return fmt.Errorf("%s: %w (%s)", op, domain.ErrStoreMisconfigured, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

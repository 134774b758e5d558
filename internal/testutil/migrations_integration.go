//go:build integration

package testutil

import (
	"context"
	"fmt"

	pgrepo "github.com/Gunvolt24/storefront/internal/repo/postgres"
)

// ApplyMigrations — прогоняет встроенные goose-миграции на пуле контейнера.
func (pg *PGContainer) ApplyMigrations(ctx context.Context) error {
	if err := pgrepo.Migrate(ctx, pg.Pool); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// StartMigratedPostgres — контейнер Postgres с применённой схемой.
func StartMigratedPostgres(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, stop, err := StartPostgresTC(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.ApplyMigrations(ctx); err != nil {
		_ = stop(context.Background())
		return nil, nil, err
	}
	return pg, stop, nil
}

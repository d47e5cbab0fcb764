// Package store abre el almacén configurado (PostgreSQL o SQLite) y expone sus
// repositorios detrás de los puertos de dominio.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
	"github.com/jhoicas/swiftstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/swiftstock-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/swiftstock-api/pkg/config"
)

// Store repositorios del almacén abierto.
type Store struct {
	Driver     string
	Facilities repository.FacilityRepository
	Inventory  repository.InventoryRepository
	Loader     repository.DataLoader
	close      func()
}

// Close libera conexiones.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta según cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Store{
			Driver:     cfg.Store.Driver,
			Facilities: postgres.NewFacilityRepository(pool),
			Inventory:  postgres.NewInventoryRepository(pool),
			Loader:     postgres.NewLoader(pool, postgres.NewTxRunner(pool)),
			close:      pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir SQLite %s: %w", cfg.Store.SQLitePath, err)
		}
		return &Store{
			Driver:     cfg.Store.Driver,
			Facilities: sqlite.NewFacilityRepository(db),
			Inventory:  sqlite.NewInventoryRepository(db),
			Loader:     sqlite.NewLoader(db),
			close:      func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de almacén %q no soportado", cfg.Store.Driver)
}

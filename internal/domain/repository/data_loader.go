package repository

import (
	"context"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// DataLoader puerto de escritura usado solo por la carga inicial (CLI seed_inventory).
// La API trata facilities e inventory_daily como datos de solo lectura.
type DataLoader interface {
	// EnsureSchema crea las tablas si no existen.
	EnsureSchema(ctx context.Context) error
	// UpsertFacilities inserta o actualiza el catálogo de instalaciones por ID.
	UpsertFacilities(ctx context.Context, facilities []entity.Facility) (int, error)
	// ImportRecords inserta los cortes; (instalación, insumo, fecha) existente se sobrescribe.
	ImportRecords(ctx context.Context, records []entity.InventoryRecord) (int, error)
}

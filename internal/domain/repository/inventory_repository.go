package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// SnapshotFilter filtros opcionales del corte más reciente (vacío = sin filtro).
type SnapshotFilter struct {
	ItemName    string
	Criticality entity.Criticality
}

// SnapshotRow fila cruda: instalación unida a su inventario de la fecha más reciente,
// con el consumo diario promedio del historial del par (instalación, insumo).
type SnapshotRow struct {
	Facility      entity.Facility
	ItemName      string
	Category      string
	Criticality   entity.Criticality
	ClosingStock  int
	AvgDailyUsage decimal.Decimal
	Date          time.Time
}

// FacilityStock stock de cierre actual de un insumo en una instalación.
type FacilityStock struct {
	Facility     entity.Facility
	ClosingStock int
}

// InventoryRepository consultas de solo lectura sobre el inventario diario.
type InventoryRepository interface {
	// LatestSnapshot devuelve las filas de la fecha más reciente, ordenadas por
	// instalación e insumo.
	LatestSnapshot(ctx context.Context, filter SnapshotFilter) ([]SnapshotRow, error)

	// ItemStock devuelve, para la fecha más reciente, las instalaciones cuyo stock de
	// cierre del insumo es estrictamente mayor que minStock. El orden es el del almacén
	// (por ID de instalación); el llamador decide el ranking.
	ItemStock(ctx context.Context, itemName string, minStock int) ([]FacilityStock, error)

	// ListItems nombres de insumo distintos presentes en el inventario.
	ListItems(ctx context.Context) ([]string, error)
}

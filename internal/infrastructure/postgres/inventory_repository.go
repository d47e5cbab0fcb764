package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo consultas de solo lectura sobre inventory_daily.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// LatestSnapshot une instalaciones con el inventario de la fecha más reciente.
// avg_daily_usage es el promedio de issued_qty de todo el historial del par (instalación, insumo).
func (r *InventoryRepo) LatestSnapshot(ctx context.Context, filter repository.SnapshotFilter) ([]repository.SnapshotRow, error) {
	const query = `
	WITH latest AS (
	    SELECT MAX(date) AS d FROM inventory_daily
	),
	usage AS (
	    SELECT facility_id, item_name, AVG(issued_qty) AS avg_daily_usage
	    FROM inventory_daily
	    GROUP BY facility_id, item_name
	)
	SELECT
	    f.facility_id, f.facility_name, f.latitude, f.longitude,
	    i.item_name, i.category, i.criticality_level, i.closing_stock,
	    COALESCE(u.avg_daily_usage, 0) AS avg_daily_usage,
	    i.date
	FROM facilities f
	JOIN inventory_daily i ON i.facility_id = f.facility_id
	JOIN latest l          ON i.date = l.d
	LEFT JOIN usage u      ON u.facility_id = i.facility_id AND u.item_name = i.item_name
	WHERE ($1 = '' OR i.item_name = $1)
	  AND ($2 = '' OR i.criticality_level = $2)
	ORDER BY f.facility_id, i.item_name`

	rows, err := r.q.Query(ctx, query, filter.ItemName, string(filter.Criticality))
	if err != nil {
		return nil, fmt.Errorf("inventory.LatestSnapshot: %w", err)
	}
	defer rows.Close()

	var out []repository.SnapshotRow
	for rows.Next() {
		var (
			row  repository.SnapshotRow
			crit string
		)
		if err := rows.Scan(
			&row.Facility.ID, &row.Facility.Name, &row.Facility.Latitude, &row.Facility.Longitude,
			&row.ItemName, &row.Category, &crit, &row.ClosingStock,
			&row.AvgDailyUsage, &row.Date,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		row.Criticality = entity.Criticality(crit)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ItemStock instalaciones con stock de cierre del insumo > minStock en la fecha más reciente.
func (r *InventoryRepo) ItemStock(ctx context.Context, itemName string, minStock int) ([]repository.FacilityStock, error) {
	const query = `
	SELECT f.facility_id, f.facility_name, f.latitude, f.longitude, i.closing_stock
	FROM facilities f
	JOIN inventory_daily i ON i.facility_id = f.facility_id
	WHERE i.date = (SELECT MAX(date) FROM inventory_daily)
	  AND i.item_name = $1
	  AND i.closing_stock > $2
	ORDER BY f.facility_id`

	rows, err := r.q.Query(ctx, query, itemName, minStock)
	if err != nil {
		return nil, fmt.Errorf("inventory.ItemStock: %w", err)
	}
	defer rows.Close()

	var out []repository.FacilityStock
	for rows.Next() {
		var fs repository.FacilityStock
		if err := rows.Scan(
			&fs.Facility.ID, &fs.Facility.Name, &fs.Facility.Latitude, &fs.Facility.Longitude,
			&fs.ClosingStock,
		); err != nil {
			return nil, fmt.Errorf("scan item stock: %w", err)
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}

// ListItems nombres de insumo distintos, ordenados alfabéticamente.
func (r *InventoryRepo) ListItems(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT item_name FROM inventory_daily ORDER BY item_name`)
	if err != nil {
		return nil, fmt.Errorf("inventory.ListItems: %w", err)
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan item name: %w", err)
		}
		items = append(items, name)
	}
	return items, rows.Err()
}

package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

type snapshotRow struct {
	facilityRow
	ItemName      string  `db:"item_name"`
	Category      string  `db:"category"`
	Criticality   string  `db:"criticality_level"`
	ClosingStock  int     `db:"closing_stock"`
	AvgDailyUsage float64 `db:"avg_daily_usage"`
	Date          string  `db:"date"`
}

type stockRow struct {
	facilityRow
	ClosingStock int `db:"closing_stock"`
}

// InventoryRepo consultas de solo lectura sobre inventory_daily.
type InventoryRepo struct {
	db *sqlx.DB
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(db *sqlx.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) LatestSnapshot(ctx context.Context, filter repository.SnapshotFilter) ([]repository.SnapshotRow, error) {
	const q = `
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
	    COALESCE(u.avg_daily_usage, 0.0) AS avg_daily_usage,
	    i.date
	FROM facilities f
	JOIN inventory_daily i ON i.facility_id = f.facility_id
	JOIN latest l          ON i.date = l.d
	LEFT JOIN usage u      ON u.facility_id = i.facility_id AND u.item_name = i.item_name
	WHERE (? = '' OR i.item_name = ?)
	  AND (? = '' OR i.criticality_level = ?)
	ORDER BY f.facility_id, i.item_name`

	crit := string(filter.Criticality)
	var rows []snapshotRow
	if err := r.db.SelectContext(ctx, &rows, q, filter.ItemName, filter.ItemName, crit, crit); err != nil {
		return nil, fmt.Errorf("inventory.LatestSnapshot: %w", err)
	}

	out := make([]repository.SnapshotRow, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(entity.DateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", row.Date, err)
		}
		out = append(out, repository.SnapshotRow{
			Facility:      row.toEntity(),
			ItemName:      row.ItemName,
			Category:      row.Category,
			Criticality:   entity.Criticality(row.Criticality),
			ClosingStock:  row.ClosingStock,
			AvgDailyUsage: decimal.NewFromFloat(row.AvgDailyUsage),
			Date:          date,
		})
	}
	return out, nil
}

func (r *InventoryRepo) ItemStock(ctx context.Context, itemName string, minStock int) ([]repository.FacilityStock, error) {
	const q = `
	SELECT f.facility_id, f.facility_name, f.latitude, f.longitude, i.closing_stock
	FROM facilities f
	JOIN inventory_daily i ON i.facility_id = f.facility_id
	WHERE i.date = (SELECT MAX(date) FROM inventory_daily)
	  AND i.item_name = ?
	  AND i.closing_stock > ?
	ORDER BY f.facility_id`

	var rows []stockRow
	if err := r.db.SelectContext(ctx, &rows, q, itemName, minStock); err != nil {
		return nil, fmt.Errorf("inventory.ItemStock: %w", err)
	}
	out := make([]repository.FacilityStock, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.FacilityStock{Facility: row.toEntity(), ClosingStock: row.ClosingStock})
	}
	return out, nil
}

func (r *InventoryRepo) ListItems(ctx context.Context) ([]string, error) {
	var items []string
	if err := r.db.SelectContext(ctx, &items, `SELECT DISTINCT item_name FROM inventory_daily ORDER BY item_name`); err != nil {
		return nil, fmt.Errorf("inventory.ListItems: %w", err)
	}
	return items, nil
}

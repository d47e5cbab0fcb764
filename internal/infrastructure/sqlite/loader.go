package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/inventory"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

var _ repository.DataLoader = (*Loader)(nil)

type recordRow struct {
	RecordID     string `db:"record_id"`
	Date         string `db:"date"`
	FacilityID   string `db:"facility_id"`
	ItemName     string `db:"item_name"`
	Category     string `db:"category"`
	OpeningStock int    `db:"opening_stock"`
	ReceivedQty  int    `db:"received_qty"`
	IssuedQty    int    `db:"issued_qty"`
	ClosingStock int    `db:"closing_stock"`
	LeadTimeDays int    `db:"lead_time_days"`
	Criticality  string `db:"criticality_level"`
}

// Loader carga facilities e inventory_daily en SQLite.
type Loader struct {
	db *sqlx.DB
}

// NewLoader construye el cargador.
func NewLoader(db *sqlx.DB) *Loader {
	return &Loader{db: db}
}

func (l *Loader) EnsureSchema(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (l *Loader) UpsertFacilities(ctx context.Context, facilities []entity.Facility) (int, error) {
	if len(facilities) == 0 {
		return 0, nil
	}
	const q = `
		INSERT INTO facilities (facility_id, facility_name, latitude, longitude)
		VALUES (:facility_id, :facility_name, :latitude, :longitude)
		ON CONFLICT(facility_id) DO UPDATE SET
			facility_name = excluded.facility_name,
			latitude = excluded.latitude,
			longitude = excluded.longitude`

	err := l.inTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, q)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, f := range facilities {
			row := facilityRow{ID: f.ID, Name: f.Name, Latitude: f.Latitude, Longitude: f.Longitude}
			if _, err := stmt.ExecContext(ctx, row); err != nil {
				return fmt.Errorf("facility %s: %w", f.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("upsert facilities: %w", domain.ErrInvalidInput)
		}
		return 0, fmt.Errorf("upsert facilities: %w", err)
	}
	return len(facilities), nil
}

func (l *Loader) ImportRecords(ctx context.Context, records []entity.InventoryRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if err := inventory.ValidBatch(records); err != nil {
		return 0, fmt.Errorf("import records: %w", err)
	}
	const q = `
		INSERT INTO inventory_daily (
			record_id, date, facility_id, item_name, category,
			opening_stock, received_qty, issued_qty, closing_stock,
			lead_time_days, criticality_level)
		VALUES (
			:record_id, :date, :facility_id, :item_name, :category,
			:opening_stock, :received_qty, :issued_qty, :closing_stock,
			:lead_time_days, :criticality_level)
		ON CONFLICT(facility_id, item_name, date) DO UPDATE SET
			record_id = excluded.record_id,
			category = excluded.category,
			opening_stock = excluded.opening_stock,
			received_qty = excluded.received_qty,
			issued_qty = excluded.issued_qty,
			closing_stock = excluded.closing_stock,
			lead_time_days = excluded.lead_time_days,
			criticality_level = excluded.criticality_level`

	err := l.inTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, q)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range records {
			row := recordRow{
				RecordID:     r.RecordID,
				Date:         r.Date.Format(entity.DateLayout),
				FacilityID:   r.FacilityID,
				ItemName:     r.ItemName,
				Category:     r.Category,
				OpeningStock: r.OpeningStock,
				ReceivedQty:  r.ReceivedQty,
				IssuedQty:    r.IssuedQty,
				ClosingStock: r.ClosingStock,
				LeadTimeDays: r.LeadTimeDays,
				Criticality:  string(r.Criticality),
			}
			if _, err := stmt.ExecContext(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return 0, fmt.Errorf("import records: instalación desconocida: %w", domain.ErrNotFound)
		case isCheckViolation(err):
			return 0, fmt.Errorf("import records: %w", domain.ErrInvariantViolated)
		}
		return 0, fmt.Errorf("import records: %w", err)
	}
	return len(records), nil
}

func (l *Loader) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/inventory"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

//go:embed schema.sql
var schemaSQL string

var _ repository.DataLoader = (*Loader)(nil)

// Loader carga facilities e inventory_daily. Las escrituras van en una sola transacción.
type Loader struct {
	q  Querier
	tx *TxRunner
}

// NewLoader construye el cargador. q se usa para DDL; tx para las cargas.
func NewLoader(q Querier, tx *TxRunner) *Loader {
	return &Loader{q: q, tx: tx}
}

// EnsureSchema crea tablas e índices si no existen.
func (l *Loader) EnsureSchema(ctx context.Context) error {
	if _, err := l.q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UpsertFacilities inserta o actualiza instalaciones por facility_id en un batch.
func (l *Loader) UpsertFacilities(ctx context.Context, facilities []entity.Facility) (int, error) {
	if len(facilities) == 0 {
		return 0, nil
	}
	const query = `
		INSERT INTO facilities (facility_id, facility_name, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (facility_id) DO UPDATE
		SET facility_name = EXCLUDED.facility_name,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude`

	err := l.tx.Run(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, f := range facilities {
			batch.Queue(query, f.ID, f.Name, f.Latitude, f.Longitude)
		}
		br := tx.SendBatch(ctx, batch)
		for range facilities {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return err
			}
		}
		return br.Close()
	})
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("upsert facilities: %w", domain.ErrInvalidInput)
		}
		return 0, fmt.Errorf("upsert facilities: %w", err)
	}
	return len(facilities), nil
}

// ImportRecords copia los cortes a una tabla temporal con COPY y los fusiona en
// inventory_daily; un (facility_id, item_name, date) existente se sobrescribe.
func (l *Loader) ImportRecords(ctx context.Context, records []entity.InventoryRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if err := inventory.ValidBatch(records); err != nil {
		return 0, fmt.Errorf("import records: %w", err)
	}

	columns := []string{
		"record_id", "date", "facility_id", "item_name", "category",
		"opening_stock", "received_qty", "issued_qty", "closing_stock",
		"lead_time_days", "criticality_level",
	}

	var merged int64
	err := l.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			CREATE TEMP TABLE inventory_stage (LIKE inventory_daily INCLUDING DEFAULTS)
			ON COMMIT DROP`); err != nil {
			return fmt.Errorf("create stage: %w", err)
		}

		src := pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{
				r.RecordID, r.Date, r.FacilityID, r.ItemName, r.Category,
				r.OpeningStock, r.ReceivedQty, r.IssuedQty, r.ClosingStock,
				r.LeadTimeDays, string(r.Criticality),
			}, nil
		})
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"inventory_stage"}, columns, src); err != nil {
			return fmt.Errorf("copy records: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO inventory_daily (
				record_id, date, facility_id, item_name, category,
				opening_stock, received_qty, issued_qty, closing_stock,
				lead_time_days, criticality_level)
			SELECT record_id, date, facility_id, item_name, category,
				opening_stock, received_qty, issued_qty, closing_stock,
				lead_time_days, criticality_level
			FROM inventory_stage
			ON CONFLICT (facility_id, item_name, date) DO UPDATE
			SET record_id = EXCLUDED.record_id,
			    category = EXCLUDED.category,
			    opening_stock = EXCLUDED.opening_stock,
			    received_qty = EXCLUDED.received_qty,
			    issued_qty = EXCLUDED.issued_qty,
			    closing_stock = EXCLUDED.closing_stock,
			    lead_time_days = EXCLUDED.lead_time_days,
			    criticality_level = EXCLUDED.criticality_level`)
		if err != nil {
			return err
		}
		merged = tag.RowsAffected()
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
	return int(merged), nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

var _ repository.FacilityRepository = (*FacilityRepo)(nil)

type facilityRow struct {
	ID        string  `db:"facility_id"`
	Name      string  `db:"facility_name"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
}

func (r facilityRow) toEntity() entity.Facility {
	return entity.Facility{ID: r.ID, Name: r.Name, Latitude: r.Latitude, Longitude: r.Longitude}
}

// FacilityRepo implementación de FacilityRepository sobre SQLite.
type FacilityRepo struct {
	db *sqlx.DB
}

// NewFacilityRepository construye el adaptador.
func NewFacilityRepository(db *sqlx.DB) *FacilityRepo {
	return &FacilityRepo{db: db}
}

func (r *FacilityRepo) List(ctx context.Context) ([]entity.Facility, error) {
	var rows []facilityRow
	const q = `SELECT facility_id, facility_name, latitude, longitude FROM facilities ORDER BY facility_id`
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	out := make([]entity.Facility, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *FacilityRepo) GetByID(ctx context.Context, id string) (*entity.Facility, error) {
	var row facilityRow
	const q = `SELECT facility_id, facility_name, latitude, longitude FROM facilities WHERE facility_id = ?`
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get facility: %w", err)
	}
	f := row.toEntity()
	return &f, nil
}

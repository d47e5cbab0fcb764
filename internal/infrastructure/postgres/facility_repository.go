package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

var _ repository.FacilityRepository = (*FacilityRepo)(nil)

// FacilityRepo implementación de FacilityRepository sobre PostgreSQL.
type FacilityRepo struct {
	q Querier
}

// NewFacilityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacilityRepository(q Querier) *FacilityRepo {
	return &FacilityRepo{q: q}
}

// List devuelve todas las instalaciones ordenadas por ID.
func (r *FacilityRepo) List(ctx context.Context) ([]entity.Facility, error) {
	query := `
		SELECT facility_id, facility_name, latitude, longitude
		FROM facilities ORDER BY facility_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()
	var list []entity.Facility
	for rows.Next() {
		var f entity.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Latitude, &f.Longitude); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// GetByID obtiene una instalación por ID; (nil, nil) si no existe.
func (r *FacilityRepo) GetByID(ctx context.Context, id string) (*entity.Facility, error) {
	query := `
		SELECT facility_id, facility_name, latitude, longitude
		FROM facilities WHERE facility_id = $1`
	var f entity.Facility
	err := r.q.QueryRow(ctx, query, id).Scan(&f.ID, &f.Name, &f.Latitude, &f.Longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get facility: %w", err)
	}
	return &f, nil
}

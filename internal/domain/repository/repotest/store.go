// Package repotest fakes en memoria de los puertos de repository para pruebas de
// casos de uso y handlers.
package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

var (
	_ repository.FacilityRepository  = (*Store)(nil)
	_ repository.InventoryRepository = (*Store)(nil)
)

// Store implementa FacilityRepository e InventoryRepository sobre slices.
// Err, si no es nil, se devuelve en todas las llamadas.
type Store struct {
	Facilities []entity.Facility
	Records    []entity.InventoryRecord
	Err        error
}

func (s *Store) List(ctx context.Context) ([]entity.Facility, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := append([]entity.Facility(nil), s.Facilities...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*entity.Facility, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, f := range s.Facilities {
		if f.ID == id {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (s *Store) latestDate() time.Time {
	var latest time.Time
	for _, r := range s.Records {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest
}

func (s *Store) facility(id string) (entity.Facility, bool) {
	for _, f := range s.Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return entity.Facility{}, false
}

func (s *Store) avgUsage(facilityID, item string) decimal.Decimal {
	sum, n := 0, 0
	for _, r := range s.Records {
		if r.FacilityID == facilityID && r.ItemName == item {
			sum += r.IssuedQty
			n++
		}
	}
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(n)))
}

func (s *Store) LatestSnapshot(ctx context.Context, filter repository.SnapshotFilter) ([]repository.SnapshotRow, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	latest := s.latestDate()
	var out []repository.SnapshotRow
	for _, r := range s.Records {
		if !r.Date.Equal(latest) {
			continue
		}
		if filter.ItemName != "" && r.ItemName != filter.ItemName {
			continue
		}
		if filter.Criticality != "" && r.Criticality != filter.Criticality {
			continue
		}
		f, ok := s.facility(r.FacilityID)
		if !ok {
			continue
		}
		out = append(out, repository.SnapshotRow{
			Facility:      f,
			ItemName:      r.ItemName,
			Category:      r.Category,
			Criticality:   r.Criticality,
			ClosingStock:  r.ClosingStock,
			AvgDailyUsage: s.avgUsage(r.FacilityID, r.ItemName),
			Date:          r.Date,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Facility.ID != out[j].Facility.ID {
			return out[i].Facility.ID < out[j].Facility.ID
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out, nil
}

func (s *Store) ItemStock(ctx context.Context, itemName string, minStock int) ([]repository.FacilityStock, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	latest := s.latestDate()
	var out []repository.FacilityStock
	for _, r := range s.Records {
		if !r.Date.Equal(latest) || r.ItemName != itemName || r.ClosingStock <= minStock {
			continue
		}
		if f, ok := s.facility(r.FacilityID); ok {
			out = append(out, repository.FacilityStock{Facility: f, ClosingStock: r.ClosingStock})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Facility.ID < out[j].Facility.ID })
	return out, nil
}

func (s *Store) ListItems(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	seen := make(map[string]bool)
	var items []string
	for _, r := range s.Records {
		if !seen[r.ItemName] {
			seen[r.ItemName] = true
			items = append(items, r.ItemName)
		}
	}
	sort.Strings(items)
	return items, nil
}

// Record atajo para construir un corte válido (cierre calculado).
func Record(date time.Time, facilityID, item string, crit entity.Criticality, opening, received, issued int) entity.InventoryRecord {
	closing := opening + received - issued
	if closing < 0 {
		closing = 0
	}
	return entity.InventoryRecord{
		RecordID:     facilityID + "/" + item + "/" + date.Format(entity.DateLayout),
		Date:         date,
		FacilityID:   facilityID,
		ItemName:     item,
		Category:     "General",
		OpeningStock: opening,
		ReceivedQty:  received,
		IssuedQty:    issued,
		ClosingStock: closing,
		LeadTimeDays: 3,
		Criticality:  crit,
	}
}

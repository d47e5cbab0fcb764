// Package lateral recomienda transferencias entre instalaciones: para una instalación
// solicitante y un insumo, las instalaciones cercanas con excedente.
package lateral

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/geo"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

// Config valores por defecto de la búsqueda.
type Config struct {
	MinStock      int     // stock de cierre estrictamente mayor a este valor
	MaxDistanceKm float64 // 0 = sin límite de distancia
	Limit         int
}

// DefaultConfig umbral de 100 unidades, sin corte de distancia, 3 candidatos.
func DefaultConfig() Config {
	return Config{MinStock: 100, MaxDistanceKm: 0, Limit: 3}
}

// Query búsqueda de excedente. MinStock y MaxDistanceKm en nil toman el valor de
// Config; un cero explícito se respeta (umbral 0, sin límite de distancia).
// Limit en cero usa Config.
type Query struct {
	SourceFacilityID string
	ItemName         string
	MinStock         *int
	MaxDistanceKm    *float64
	Limit            int
}

// Matcher caso de uso de emparejamiento lateral.
type Matcher struct {
	facilities repository.FacilityRepository
	inventory  repository.InventoryRepository
	cfg        Config
}

// NewMatcher construye el caso de uso.
func NewMatcher(facilities repository.FacilityRepository, inventory repository.InventoryRepository, cfg Config) *Matcher {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultConfig().Limit
	}
	return &Matcher{facilities: facilities, inventory: inventory, cfg: cfg}
}

// Config devuelve la configuración efectiva.
func (m *Matcher) Config() Config { return m.cfg }

// FindLateralSupply devuelve hasta Limit instalaciones distintas del origen con stock
// del insumo mayor a MinStock, ordenadas por distancia ascendente (empates en el orden
// del almacén). Lista vacía = no hay excedente cerca; no es error.
func (m *Matcher) FindLateralSupply(ctx context.Context, q Query) ([]entity.NeighborMatch, error) {
	q.SourceFacilityID = strings.TrimSpace(q.SourceFacilityID)
	q.ItemName = strings.TrimSpace(q.ItemName)
	if q.SourceFacilityID == "" || q.ItemName == "" {
		return nil, fmt.Errorf("facility_id e item son obligatorios: %w", domain.ErrInvalidInput)
	}
	minStock, maxKm, limit := m.cfg.MinStock, m.cfg.MaxDistanceKm, m.cfg.Limit
	if q.MinStock != nil {
		minStock = *q.MinStock
	}
	if q.MaxDistanceKm != nil {
		maxKm = *q.MaxDistanceKm
	}
	if q.Limit > 0 {
		limit = q.Limit
	}
	if minStock < 0 || maxKm < 0 {
		return nil, fmt.Errorf("min_stock y max_km no pueden ser negativos: %w", domain.ErrInvalidInput)
	}

	source, err := m.Source(ctx, q.SourceFacilityID)
	if err != nil {
		return nil, err
	}

	stock, err := m.inventory.ItemStock(ctx, q.ItemName, minStock)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	available := make(map[string]int, len(stock))
	candidates := make([]entity.Facility, 0, len(stock))
	for _, s := range stock {
		if s.ClosingStock <= minStock {
			continue
		}
		available[s.Facility.ID] = s.ClosingStock
		candidates = append(candidates, s.Facility)
	}

	out := make([]entity.NeighborMatch, 0, limit)
	for _, n := range geo.Rank(*source, candidates) {
		if maxKm > 0 && n.DistanceKm >= maxKm {
			break
		}
		out = append(out, entity.NeighborMatch{
			Source:         *source,
			Candidate:      n.Facility,
			DistanceKm:     geo.RoundKm(n.DistanceKm),
			AvailableStock: available[n.Facility.ID],
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Source devuelve la instalación solicitante o domain.ErrNotFound.
func (m *Matcher) Source(ctx context.Context, id string) (*entity.Facility, error) {
	f, err := m.facilities.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if f == nil {
		return nil, fmt.Errorf("instalación %s: %w", id, domain.ErrNotFound)
	}
	return f, nil
}

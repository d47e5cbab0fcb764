// Package network estado de stock de la red de instalaciones (corte más reciente).
package network

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/inventory"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

// Filter filtros de Status; vacío = sin filtro.
type Filter struct {
	ItemName    string
	Criticality entity.Criticality
	Status      entity.StockStatus
}

// Row fila del corte con predicción y estado.
type Row struct {
	repository.SnapshotRow
	PredictedStockoutDays *decimal.Decimal
	Status                entity.StockStatus
}

// UseCase casos de uso de lectura del estado de la red.
type UseCase struct {
	inventory  repository.InventoryRepository
	thresholds inventory.Thresholds
}

// NewUseCase construye el caso de uso.
func NewUseCase(inv repository.InventoryRepository, thresholds inventory.Thresholds) *UseCase {
	return &UseCase{inventory: inv, thresholds: thresholds}
}

// Thresholds devuelve los umbrales configurados.
func (uc *UseCase) Thresholds() inventory.Thresholds { return uc.thresholds }

// Rows corte más reciente clasificado.
func (uc *UseCase) Rows(ctx context.Context, f Filter) ([]Row, error) {
	snapshot, err := uc.inventory.LatestSnapshot(ctx, repository.SnapshotFilter{
		ItemName:    f.ItemName,
		Criticality: f.Criticality,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	out := make([]Row, 0, len(snapshot))
	for _, s := range snapshot {
		row := Row{SnapshotRow: s}
		if days, ok := inventory.PredictedStockoutDays(s.ClosingStock, s.AvgDailyUsage); ok {
			row.PredictedStockoutDays = &days
		}
		row.Status = inventory.ClassifyStatus(s.ClosingStock, row.PredictedStockoutDays, uc.thresholds)
		if f.Status != "" && row.Status != f.Status {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// Status devuelve el corte más reciente en formato de respuesta.
func (uc *UseCase) Status(ctx context.Context, f Filter) ([]dto.NetworkStatusRowDTO, error) {
	rows, err := uc.Rows(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NetworkStatusRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NetworkStatusRowDTO{
			FacilityID:            r.Facility.ID,
			FacilityName:          r.Facility.Name,
			Latitude:              r.Facility.Latitude,
			Longitude:             r.Facility.Longitude,
			ItemName:              r.ItemName,
			Category:              r.Category,
			Criticality:           string(r.Criticality),
			ClosingStock:          r.ClosingStock,
			AvgDailyUsage:         r.AvgDailyUsage.Round(2),
			PredictedStockoutDays: r.PredictedStockoutDays,
			Status:                string(r.Status),
			Date:                  r.Date.Format(entity.DateLayout),
		})
	}
	return out, nil
}

// Items resumen por insumo para el selector: sitios en CRITICAL y etiqueta.
// Orden: más sitios críticos primero, luego por nombre.
func (uc *UseCase) Items(ctx context.Context, crit entity.Criticality) ([]dto.ItemSummaryDTO, error) {
	rows, err := uc.Rows(ctx, Filter{Criticality: crit})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	var names []string
	for _, r := range rows {
		if _, ok := counts[r.ItemName]; !ok {
			counts[r.ItemName] = 0
			names = append(names, r.ItemName)
		}
		if r.Status == entity.StockStatusCritical {
			counts[r.ItemName]++
		}
	}

	out := make([]dto.ItemSummaryDTO, 0, len(names))
	for _, name := range names {
		out = append(out, dto.ItemSummaryDTO{
			ItemName:      name,
			CriticalSites: counts[name],
			Label:         ItemLabel(name, counts[name]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CriticalSites != out[j].CriticalSites {
			return out[i].CriticalSites > out[j].CriticalSites
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out, nil
}

// ItemLabel etiqueta del selector: "🔴 X (n Sites)" o "✅ X (Healthy)".
func ItemLabel(item string, criticalSites int) string {
	if criticalSites > 0 {
		return fmt.Sprintf("🔴 %s (%d Sites)", item, criticalSites)
	}
	return fmt.Sprintf("✅ %s (Healthy)", item)
}

// CriticalityLevels niveles presentes en el corte, High primero.
func (uc *UseCase) CriticalityLevels(ctx context.Context) ([]entity.Criticality, error) {
	snapshot, err := uc.inventory.LatestSnapshot(ctx, repository.SnapshotFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	seen := make(map[entity.Criticality]bool)
	var levels []entity.Criticality
	for _, s := range snapshot {
		if !seen[s.Criticality] {
			seen[s.Criticality] = true
			levels = append(levels, s.Criticality)
		}
	}
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Rank() < levels[j].Rank() })
	return levels, nil
}

// KPIs indicadores de toda la red; si item no es vacío agrega los conteos del insumo.
func (uc *UseCase) KPIs(ctx context.Context, item string) (*dto.NetworkKPIsDTO, error) {
	rows, err := uc.Rows(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	warning := decimal.NewFromInt(int64(uc.thresholds.WarningDays))

	kpis := &dto.NetworkKPIsDTO{}
	var itemCritical, itemHealthy int
	for _, r := range rows {
		kpis.TotalInventory += r.ClosingStock
		if r.ClosingStock == 0 {
			kpis.Stockouts++
		} else if r.PredictedStockoutDays != nil && r.PredictedStockoutDays.LessThan(warning) {
			kpis.PredictedRisks++
		}
		if item != "" && r.ItemName == item {
			switch r.Status {
			case entity.StockStatusCritical:
				itemCritical++
			case entity.StockStatusHealthy:
				itemHealthy++
			}
		}
	}
	if item != "" {
		kpis.ItemName = item
		kpis.ItemCriticalSites = &itemCritical
		kpis.ItemHealthySites = &itemHealthy
	}
	return kpis, nil
}

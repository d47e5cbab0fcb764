// Package procurement lista automática de compras a partir del pronóstico de quiebre.
package procurement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/inventory"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

// Config reglas de reorden: si el quiebre previsto es < HorizonDays, pedir para
// CoverageDays de consumo. Menos de UrgentDays = URGENT.
type Config struct {
	HorizonDays  int
	CoverageDays int
	UrgentDays   int
}

// DefaultConfig 14 días de horizonte, 30 de cobertura, urgente bajo 7.
func DefaultConfig() Config {
	return Config{HorizonDays: 14, CoverageDays: 30, UrgentDays: 7}
}

// UseCase caso de uso de compras.
type UseCase struct {
	inventory repository.InventoryRepository
	pdf       ReorderReportGenerator
	cfg       Config
	now       func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se expone el reporte.
func NewUseCase(inv repository.InventoryRepository, pdf ReorderReportGenerator, cfg Config) *UseCase {
	return &UseCase{inventory: inv, pdf: pdf, cfg: cfg, now: time.Now}
}

// Config devuelve las reglas configuradas.
func (uc *UseCase) Config() Config { return uc.cfg }

// ReorderList filas con quiebre previsto dentro del horizonte, ascendente por días
// (empates en el orden del almacén).
func (uc *UseCase) ReorderList(ctx context.Context) ([]dto.ReorderSuggestionDTO, error) {
	return uc.list(ctx, "")
}

// ForItem la fila más urgente del insumo; nil si no está en la lista.
func (uc *UseCase) ForItem(ctx context.Context, item string) (*dto.ReorderSuggestionDTO, error) {
	rows, err := uc.list(ctx, item)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (uc *UseCase) list(ctx context.Context, item string) ([]dto.ReorderSuggestionDTO, error) {
	snapshot, err := uc.inventory.LatestSnapshot(ctx, repository.SnapshotFilter{ItemName: item})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	horizon := decimal.NewFromInt(int64(uc.cfg.HorizonDays))
	urgent := decimal.NewFromInt(int64(uc.cfg.UrgentDays))

	out := make([]dto.ReorderSuggestionDTO, 0)
	for _, s := range snapshot {
		days, ok := inventory.PredictedStockoutDays(s.ClosingStock, s.AvgDailyUsage)
		if !ok || !days.LessThan(horizon) {
			continue
		}
		priority := entity.ReorderPriorityWatch
		if days.LessThan(urgent) {
			priority = entity.ReorderPriorityUrgent
		}
		out = append(out, dto.ReorderSuggestionDTO{
			FacilityID:            s.Facility.ID,
			FacilityName:          s.Facility.Name,
			ItemName:              s.ItemName,
			Category:              s.Category,
			Criticality:           string(s.Criticality),
			ClosingStock:          s.ClosingStock,
			AvgDailyUsage:         s.AvgDailyUsage.Round(2),
			PredictedStockoutDays: days,
			SuggestedOrderQty:     inventory.SuggestedReorderQty(s.ClosingStock, s.AvgDailyUsage, uc.cfg.CoverageDays),
			Priority:              string(priority),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PredictedStockoutDays.LessThan(out[j].PredictedStockoutDays)
	})
	return out, nil
}

// ReorderPDF renderiza la lista de compras actual.
func (uc *UseCase) ReorderPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador PDF no configurado")
	}
	rows, err := uc.ReorderList(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReorderPDF(ctx, rows, uc.cfg, uc.now())
}

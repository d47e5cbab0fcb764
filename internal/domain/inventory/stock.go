package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// ClosingStock implementa el cierre diario (servicio de dominio).
// Cierre = max(0, Apertura + Recibido - Despachado)
func ClosingStock(opening, received, issued int) int {
	closing := opening + received - issued
	if closing < 0 {
		return 0
	}
	return closing
}

// ValidRecord verifica cantidades no negativas y la regla de cierre.
func ValidRecord(r entity.InventoryRecord) bool {
	if r.OpeningStock < 0 || r.ReceivedQty < 0 || r.IssuedQty < 0 || r.ClosingStock < 0 || r.LeadTimeDays < 0 {
		return false
	}
	return r.ClosingStock == ClosingStock(r.OpeningStock, r.ReceivedQty, r.IssuedQty)
}

// Thresholds umbrales de clasificación de estado.
type Thresholds struct {
	LowStockUnits int // cierre por debajo de este valor = LOW
	WarningDays   int // quiebre previsto por debajo de estos días = WARNING
}

// PredictedStockoutDays días estimados hasta agotar el stock al ritmo de consumo promedio.
// Sin consumo (avgDailyUsage <= 0) no hay predicción y ok es false.
func PredictedStockoutDays(closing int, avgDailyUsage decimal.Decimal) (days decimal.Decimal, ok bool) {
	if !avgDailyUsage.GreaterThan(decimal.Zero) {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(closing)).Div(avgDailyUsage).Round(1), true
}

// ClassifyStatus clasifica el stock de un insumo.
// Orden de evaluación: CRITICAL (0 unidades), WARNING (quiebre previsto), LOW, HEALTHY.
// predicted nil = sin predicción disponible.
func ClassifyStatus(closing int, predicted *decimal.Decimal, t Thresholds) entity.StockStatus {
	if closing <= 0 {
		return entity.StockStatusCritical
	}
	if predicted != nil && t.WarningDays > 0 && predicted.LessThan(decimal.NewFromInt(int64(t.WarningDays))) {
		return entity.StockStatusWarning
	}
	if closing < t.LowStockUnits {
		return entity.StockStatusLow
	}
	return entity.StockStatusHealthy
}

// SuggestedReorderQty cantidad a pedir para cubrir coverageDays de consumo:
// ceil(consumo * cobertura - cierre), nunca negativa.
func SuggestedReorderQty(closing int, avgDailyUsage decimal.Decimal, coverageDays int) decimal.Decimal {
	need := avgDailyUsage.Mul(decimal.NewFromInt(int64(coverageDays))).Sub(decimal.NewFromInt(int64(closing))).Ceil()
	if need.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return need
}

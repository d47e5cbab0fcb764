package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/inventory"
)

func TestClosingStock(t *testing.T) {
	cases := []struct {
		name                      string
		opening, received, issued int
		want                      int
	}{
		{"crisis", 10, 0, 10, 0},
		{"excedente", 600, 0, 5, 595},
		{"normal", 250, 20, 15, 255},
		{"sobre-despacho no queda negativo", 5, 0, 30, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.ClosingStock(tc.opening, tc.received, tc.issued)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestClosingStock_NuncaNegativo(t *testing.T) {
	for opening := 0; opening <= 40; opening += 4 {
		for received := 0; received <= 30; received += 5 {
			for issued := 0; issued <= 90; issued += 9 {
				got := inventory.ClosingStock(opening, received, issued)
				assert.GreaterOrEqual(t, got, 0)
				if opening+received >= issued {
					assert.Equal(t, opening+received-issued, got)
				}
			}
		}
	}
}

func TestValidRecord(t *testing.T) {
	ok := entity.InventoryRecord{OpeningStock: 100, ReceivedQty: 10, IssuedQty: 20, ClosingStock: 90}
	assert.True(t, inventory.ValidRecord(ok))

	bad := ok
	bad.ClosingStock = 91
	assert.False(t, inventory.ValidRecord(bad))

	neg := ok
	neg.ReceivedQty = -1
	neg.ClosingStock = 79
	assert.False(t, inventory.ValidRecord(neg))
}

func TestPredictedStockoutDays(t *testing.T) {
	days, ok := inventory.PredictedStockoutDays(100, decimal.NewFromInt(15))
	assert.True(t, ok)
	assert.Equal(t, "6.7", days.String())

	_, ok = inventory.PredictedStockoutDays(100, decimal.Zero)
	assert.False(t, ok, "sin consumo no hay predicción")
}

func TestClassifyStatus(t *testing.T) {
	th := inventory.Thresholds{LowStockUnits: 50, WarningDays: 7}
	five := decimal.NewFromInt(5)
	twenty := decimal.NewFromInt(20)

	assert.Equal(t, entity.StockStatusCritical, inventory.ClassifyStatus(0, &five, th))
	assert.Equal(t, entity.StockStatusWarning, inventory.ClassifyStatus(300, &five, th))
	assert.Equal(t, entity.StockStatusLow, inventory.ClassifyStatus(30, &twenty, th))
	assert.Equal(t, entity.StockStatusLow, inventory.ClassifyStatus(30, nil, th))
	assert.Equal(t, entity.StockStatusHealthy, inventory.ClassifyStatus(300, &twenty, th))
	assert.Equal(t, entity.StockStatusHealthy, inventory.ClassifyStatus(300, nil, th))
}

func TestSuggestedReorderQty(t *testing.T) {
	// 12.5 u/día * 30 días = 375 - 100 = 275
	assert.Equal(t, "275", inventory.SuggestedReorderQty(100, decimal.NewFromFloat(12.5), 30).String())
	// redondeo hacia arriba
	assert.Equal(t, "201", inventory.SuggestedReorderQty(100, decimal.RequireFromString("10.01"), 30).String())
	// ya cubierto
	assert.True(t, inventory.SuggestedReorderQty(1000, decimal.NewFromInt(10), 30).IsZero())
}

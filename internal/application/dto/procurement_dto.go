package dto

import "github.com/shopspring/decimal"

// ReorderSuggestionDTO fila de la lista de compras.
type ReorderSuggestionDTO struct {
	FacilityID            string          `json:"facility_id"`
	FacilityName          string          `json:"facility_name"`
	ItemName              string          `json:"item_name"`
	Category              string          `json:"category"`
	Criticality           string          `json:"criticality_level"`
	ClosingStock          int             `json:"closing_stock"`
	AvgDailyUsage         decimal.Decimal `json:"avg_daily_usage"`
	PredictedStockoutDays decimal.Decimal `json:"predicted_stockout_days"`
	SuggestedOrderQty     decimal.Decimal `json:"suggested_order_qty"`
	Priority              string          `json:"priority"` // URGENT | WATCH
}

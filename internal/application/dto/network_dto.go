package dto

import "github.com/shopspring/decimal"

// NetworkStatusFilter query de GET /api/network/status.
type NetworkStatusFilter struct {
	ItemName    string `query:"item"`
	Criticality string `query:"criticality"`
	Status      string `query:"status"`
}

// NetworkStatusRowDTO estado actual de un insumo en una instalación.
type NetworkStatusRowDTO struct {
	FacilityID            string           `json:"facility_id"`
	FacilityName          string           `json:"facility_name"`
	Latitude              float64          `json:"latitude"`
	Longitude             float64          `json:"longitude"`
	ItemName              string           `json:"item_name"`
	Category              string           `json:"category"`
	Criticality           string           `json:"criticality_level"`
	ClosingStock          int              `json:"closing_stock"`
	AvgDailyUsage         decimal.Decimal  `json:"avg_daily_usage"`
	PredictedStockoutDays *decimal.Decimal `json:"predicted_stockout_days"` // null = sin consumo
	Status                string           `json:"status"`
	Date                  string           `json:"date"`
}

// ItemSummaryDTO entrada del selector de insumos.
type ItemSummaryDTO struct {
	ItemName      string `json:"item_name"`
	CriticalSites int    `json:"critical_sites"`
	Label         string `json:"label"`
}

// NetworkKPIsDTO indicadores de la red. Los campos Item* solo se llenan si se pidió un insumo.
type NetworkKPIsDTO struct {
	Stockouts         int    `json:"stockouts"`
	PredictedRisks    int    `json:"predicted_risks"`
	TotalInventory    int    `json:"total_inventory"`
	ItemName          string `json:"item_name,omitempty"`
	ItemCriticalSites *int   `json:"item_critical_sites,omitempty"`
	ItemHealthySites  *int   `json:"item_healthy_sites,omitempty"`
}

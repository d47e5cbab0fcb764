package entity

import (
	"strings"
	"time"
)

// Criticality nivel de importancia de un insumo médico.
type Criticality string

const (
	CriticalityLow    Criticality = "Low"
	CriticalityMedium Criticality = "Medium"
	CriticalityHigh   Criticality = "High"
)

// ParseCriticality normaliza el texto (sin distinguir mayúsculas) a un nivel válido.
func ParseCriticality(s string) (Criticality, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return CriticalityLow, true
	case "medium":
		return CriticalityMedium, true
	case "high":
		return CriticalityHigh, true
	}
	return "", false
}

// Rank orden de prioridad para listados: High primero.
func (c Criticality) Rank() int {
	switch c {
	case CriticalityHigh:
		return 0
	case CriticalityMedium:
		return 1
	default:
		return 2
	}
}

// InventoryRecord corte diario de un insumo en una instalación.
// Uno por (FacilityID, ItemName, Date). Todas las cantidades son enteros no negativos.
type InventoryRecord struct {
	RecordID     string
	Date         time.Time
	FacilityID   string
	ItemName     string
	Category     string
	OpeningStock int
	ReceivedQty  int
	IssuedQty    int
	ClosingStock int // max(0, Opening + Received - Issued)
	LeadTimeDays int
	Criticality  Criticality
}

// DateLayout formato de fecha usado en CSV y en la base de datos.
const DateLayout = "2006-01-02"

package entity

// StockStatus clasificación del stock de un insumo en una instalación.
type StockStatus string

const (
	StockStatusCritical StockStatus = "CRITICAL" // sin unidades
	StockStatusWarning  StockStatus = "WARNING"  // quiebre previsto dentro de la ventana de alerta
	StockStatusLow      StockStatus = "LOW"
	StockStatusHealthy  StockStatus = "HEALTHY"
)

// ReorderPriority prioridad de una sugerencia de compra.
type ReorderPriority string

const (
	ReorderPriorityUrgent ReorderPriority = "URGENT"
	ReorderPriorityWatch  ReorderPriority = "WATCH"
)

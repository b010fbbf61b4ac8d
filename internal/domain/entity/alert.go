package entity

import "time"

// Categorías de alerta generadas por el evaluador de stock.
const (
	AlertCategoryStockLow      = "stock_low"
	AlertCategoryStockCritical = "stock_critical"
)

// Severidades de alerta.
const (
	AlertSeverityLow      = "low"
	AlertSeverityMedium   = "medium"
	AlertSeverityHigh     = "high"
	AlertSeverityCritical = "critical"
)

// Alert representa una alerta de umbral. Solo la operación de acknowledge la modifica.
type Alert struct {
	ID             string
	StockRecordID  string // referencia blanda (sin FK)
	SiteID         string // vacío = sin finca
	Category       string
	Severity       string
	Title          string
	Message        string
	Acknowledged   bool
	AcknowledgedAt *time.Time
	CreatedAt      time.Time
}

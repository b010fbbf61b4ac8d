package dto

import "time"

// AlertResponse salida de una alerta de stock.
type AlertResponse struct {
	ID             string     `json:"id"`
	StockRecordID  string     `json:"stock_record_id"`
	SiteID         string     `json:"site_id,omitempty"`
	Category       string     `json:"category"`
	Severity       string     `json:"severity"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// AcknowledgeAllRequest body opcional para POST /api/alerts/acknowledge-all.
type AcknowledgeAllRequest struct {
	SiteID string `json:"site_id,omitempty"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRecordRequest body para POST /api/inventory/stock.
type CreateStockRecordRequest struct {
	SiteID           string          `json:"site_id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit"`
	InitialQuantity  decimal.Decimal `json:"initial_quantity"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	MaxCapacity      decimal.Decimal `json:"max_capacity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

// RegisterMovementRequest body para POST /api/inventory/stock/:id/movements.
type RegisterMovementRequest struct {
	Kind   string          `json:"kind"` // inflow | outflow
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// StockRecordResponse salida de un registro de stock.
type StockRecordResponse struct {
	ID               string          `json:"id"`
	SiteID           string          `json:"site_id,omitempty"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit"`
	QuantityOnHand   decimal.Decimal `json:"quantity_on_hand"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	MaxCapacity      decimal.Decimal `json:"max_capacity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Level            string          `json:"level"`
	OrderPlaced      bool            `json:"order_placed"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID            string          `json:"id"`
	Sequence      int64           `json:"sequence"`
	StockRecordID string          `json:"stock_record_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
	ActorID       string          `json:"actor_id,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// MovementResultResponse resultado de aplicar un movimiento.
type MovementResultResponse struct {
	Record   StockRecordResponse `json:"record"`
	Movement *MovementResponse   `json:"movement,omitempty"`
	Alert    *AlertResponse      `json:"alert,omitempty"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un insumo
// que se encuentra por debajo de su umbral de reorden.
type ReplenishmentSuggestionDTO struct {
	StockRecordID      string          `json:"stock_record_id"`
	SiteID             string          `json:"site_id,omitempty"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderThreshold   decimal.Decimal `json:"reorder_threshold"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`         // stock máximo o umbral × 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitPrice
	Level              string          `json:"level"`                // low | critical
	Priority           int             `json:"priority"`             // 1 = más urgente
	OrderPlaced        bool            `json:"order_placed"`
}

// MovementListResponse página del historial de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa el stock actual de un insumo en una finca (snapshot materializado).
// QuantityOnHand solo la modifica el ledger de movimientos; siempre coincide con la suma
// con signo de los movimientos aplicados desde su creación.
type StockRecord struct {
	ID               string
	SiteID           string // finca
	Name             string
	Category         string // fertilizante, protector, herramienta, empaque, quimico, otro
	Unit             string // kg, litro, rollo, caja, unidad...
	QuantityOnHand   decimal.Decimal
	ReorderThreshold decimal.Decimal // stock mínimo
	MaxCapacity      decimal.Decimal // stock máximo (0 = sin tope)
	UnitPrice        decimal.Decimal
	OrderPlaced      bool // pedido de compra generado y aún sin recibir
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StockLevel clasificación del stock frente a su umbral de reorden.
type StockLevel string

const (
	StockLevelNormal   StockLevel = "normal"
	StockLevelLow      StockLevel = "low"
	StockLevelCritical StockLevel = "critical"
)

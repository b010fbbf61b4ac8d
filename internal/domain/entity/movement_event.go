package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementKindInflow  = "inflow"  // entrada
	MovementKindOutflow = "outflow" // salida
)

// MovementEvent representa un movimiento de inventario inmutable (entrada o salida).
// Las correcciones se registran como movimientos compensatorios, nunca como ediciones.
type MovementEvent struct {
	ID            string
	Sequence      int64 // orden de commit dentro del store
	StockRecordID string
	SiteID        string
	Kind          string
	Amount        decimal.Decimal // siempre > 0; el signo lo da Kind
	OccurredAt    time.Time
	ActorID       string // vacío = sin responsable
	Note          string
}

// SignedAmount devuelve el efecto del movimiento sobre el stock (+ entrada, - salida).
func (m MovementEvent) SignedAmount() decimal.Decimal {
	if m.Kind == MovementKindOutflow {
		return m.Amount.Neg()
	}
	return m.Amount
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del préstamo.
const (
	LoanStatusActive = "active"
	LoanStatusPaid   = "paid"
)

// Loan representa un préstamo (anticipo) a un empleado.
// AmountPaid e InstallmentsPaid son independientes: las cuotas las informa el llamador.
type Loan struct {
	ID               string
	EmployeeID       string
	Principal        decimal.Decimal
	AmountPaid       decimal.Decimal
	InstallmentCount int
	InstallmentsPaid int
	Status           string
	Reason           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Outstanding devuelve el saldo pendiente.
func (l Loan) Outstanding() decimal.Decimal {
	return l.Principal.Sub(l.AmountPaid)
}

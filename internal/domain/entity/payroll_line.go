package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del rol de pago.
const (
	PayrollStatusPending  = "pending"
	PayrollStatusApproved = "approved"
	PayrollStatusPaid     = "paid"
)

// PayrollLine representa un rol de pago de un empleado para un período.
// TotalPayable es derivado: BaseSalary + Overtime + Bonuses - Deductions.
type PayrollLine struct {
	ID           string
	EmployeeID   string
	PayDate      time.Time
	PeriodStart  time.Time
	PeriodEnd    time.Time
	BaseSalary   decimal.Decimal
	Overtime     decimal.Decimal
	Bonuses      decimal.Decimal
	Deductions   decimal.Decimal
	TotalPayable decimal.Decimal
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

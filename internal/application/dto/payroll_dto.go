package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePayrollRequest body para POST /api/payroll. Las fechas van en formato YYYY-MM-DD.
type CreatePayrollRequest struct {
	EmployeeID  string          `json:"employee_id"`
	PayDate     string          `json:"pay_date"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Overtime    decimal.Decimal `json:"overtime"`
	Bonuses     decimal.Decimal `json:"bonuses"`
	Deductions  decimal.Decimal `json:"deductions"`
	Notes       string          `json:"notes,omitempty"`
}

// UpdatePayrollAmountsRequest body para PATCH /api/payroll/:id (solo campos presentes).
type UpdatePayrollAmountsRequest struct {
	BaseSalary *decimal.Decimal `json:"base_salary"`
	Overtime   *decimal.Decimal `json:"overtime"`
	Bonuses    *decimal.Decimal `json:"bonuses"`
	Deductions *decimal.Decimal `json:"deductions"`
	Notes      *string          `json:"notes"`
}

// PayrollLineResponse salida de un rol de pago.
type PayrollLineResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	PayDate      time.Time       `json:"pay_date"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Overtime     decimal.Decimal `json:"overtime"`
	Bonuses      decimal.Decimal `json:"bonuses"`
	Deductions   decimal.Decimal `json:"deductions"`
	TotalPayable decimal.Decimal `json:"total_payable"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PayrollHistoryResponse historial de pagos de un empleado.
type PayrollHistoryResponse struct {
	EmployeeID string                `json:"employee_id"`
	Total      int                   `json:"total"`
	Items      []PayrollLineResponse `json:"items"`
}

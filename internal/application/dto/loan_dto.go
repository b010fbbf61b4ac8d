package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoanRequest body para POST /api/loans.
type CreateLoanRequest struct {
	EmployeeID       string          `json:"employee_id"`
	Principal        decimal.Decimal `json:"principal"`
	InstallmentCount int             `json:"installment_count"`
	Reason           string          `json:"reason,omitempty"`
}

// RegisterPaymentRequest body para POST /api/loans/:id/payments.
// InstallmentsPaid es opcional: si viene, reemplaza el avance de cuotas.
type RegisterPaymentRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	InstallmentsPaid *int            `json:"installments_paid,omitempty"`
}

// UpdateInstallmentsRequest body para PUT /api/loans/:id/installments.
type UpdateInstallmentsRequest struct {
	InstallmentsPaid int `json:"installments_paid"`
}

// LoanResponse salida de un préstamo.
type LoanResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	Principal        decimal.Decimal `json:"principal"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	InstallmentCount int             `json:"installment_count"`
	InstallmentsPaid int             `json:"installments_paid"`
	Status           string          `json:"status"`
	Reason           string          `json:"reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// LoanListResponse préstamos de un empleado.
type LoanListResponse struct {
	EmployeeID string         `json:"employee_id"`
	Total      int            `json:"total"`
	Items      []LoanResponse `json:"items"`
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bananera-ledger/internal/application/dto"
	"github.com/jhoicas/bananera-ledger/internal/application/loan"
)

// LoanHandler préstamos a empleados.
type LoanHandler struct {
	uc *loan.UseCase
}

// NewLoanHandler construye el handler.
func NewLoanHandler(uc *loan.UseCase) *LoanHandler {
	return &LoanHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar préstamo
// @Tags         loans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLoanRequest  true  "principal > 0, installment_count >= 1"
// @Success      201   {object}  dto.LoanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	l, err := h.uc.Create(c.Context(), loan.CreateInput{
		EmployeeID:       in.EmployeeID,
		Principal:        in.Principal,
		InstallmentCount: in.InstallmentCount,
		Reason:           in.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLoanResponse(l))
}

// GetByID godoc
// @Summary      Consultar préstamo
// @Tags         loans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.LoanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	l, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toLoanResponse(l))
}

// ListByEmployee godoc
// @Summary      Préstamos de un empleado
// @Tags         loans
// @Security     Bearer
// @Produce      json
// @Param        employeeId  path  string  true  "ID del empleado"
// @Success      200  {object}  dto.LoanListResponse
// @Router       /api/employees/{employeeId}/loans [get]
func (h *LoanHandler) ListByEmployee(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	loans, err := h.uc.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		items = append(items, toLoanResponse(l))
	}
	return c.JSON(dto.LoanListResponse{EmployeeID: employeeID, Total: len(items), Items: items})
}

// RegisterPayment godoc
// @Summary      Registrar abono
// @Description  Un abono que supere el saldo pendiente se rechaza sin efectos.
// @Tags         loans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del préstamo"
// @Param        body  body  dto.RegisterPaymentRequest  true  "amount, installments_paid opcional"
// @Success      200   {object}  dto.LoanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/payments [post]
func (h *LoanHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	l, err := h.uc.RegisterPayment(c.Context(), c.Params("id"), in.Amount, in.InstallmentsPaid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toLoanResponse(l))
}

// UpdateInstallments godoc
// @Summary      Actualizar cuotas pagadas
// @Tags         loans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del préstamo"
// @Param        body  body  dto.UpdateInstallmentsRequest  true  "installments_paid"
// @Success      200   {object}  dto.LoanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/installments [put]
func (h *LoanHandler) UpdateInstallments(c *fiber.Ctx) error {
	var in dto.UpdateInstallmentsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	l, err := h.uc.UpdateInstallments(c.Context(), c.Params("id"), in.InstallmentsPaid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toLoanResponse(l))
}

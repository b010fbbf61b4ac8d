package http

import (
	"fmt"
	"mime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bananera-ledger/internal/application/dto"
	"github.com/jhoicas/bananera-ledger/internal/application/payroll"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// PayrollHandler roles de pago (nómina).
type PayrollHandler struct {
	uc      *payroll.UseCase
	payslip *payroll.PayslipUseCase
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(uc *payroll.UseCase, payslip *payroll.PayslipUseCase) *PayrollHandler {
	return &PayrollHandler{uc: uc, payslip: payslip}
}

// Create godoc
// @Summary      Registrar rol de pago
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePayrollRequest  true  "fechas en YYYY-MM-DD"
// @Success      201   {object}  dto.PayrollLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payroll [post]
func (h *PayrollHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	dates := make([]time.Time, 3)
	for i, raw := range []string{in.PayDate, in.PeriodStart, in.PeriodEnd} {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return badRequest(c, "VALIDATION", fmt.Sprintf("fecha inválida %q, formato YYYY-MM-DD", raw))
		}
		dates[i] = d
	}
	line, err := h.uc.Create(c.Context(), payroll.CreateInput{
		EmployeeID:  in.EmployeeID,
		PayDate:     dates[0],
		PeriodStart: dates[1],
		PeriodEnd:   dates[2],
		BaseSalary:  in.BaseSalary,
		Overtime:    in.Overtime,
		Bonuses:     in.Bonuses,
		Deductions:  in.Deductions,
		Notes:       in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPayrollLineResponse(line))
}

// GetByID godoc
// @Summary      Consultar rol de pago
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.PayrollLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id} [get]
func (h *PayrollHandler) GetByID(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Get(c.Context(), c.Params("id")))
}

// ListByEmployee godoc
// @Summary      Historial de pagos de un empleado
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        employeeId  path  string  true  "ID del empleado"
// @Success      200  {object}  dto.PayrollHistoryResponse
// @Router       /api/employees/{employeeId}/payroll [get]
func (h *PayrollHandler) ListByEmployee(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	lines, err := h.uc.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.PayrollLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, toPayrollLineResponse(line))
	}
	return c.JSON(dto.PayrollHistoryResponse{EmployeeID: employeeID, Total: len(items), Items: items})
}

// UpdateAmounts godoc
// @Summary      Ajustar montos de un rol pendiente
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del rol"
// @Param        body  body  dto.UpdatePayrollAmountsRequest  true  "solo los campos a cambiar"
// @Success      200   {object}  dto.PayrollLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payroll/{id} [patch]
func (h *PayrollHandler) UpdateAmounts(c *fiber.Ctx) error {
	var in dto.UpdatePayrollAmountsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.respond(c)(h.uc.UpdateAmounts(c.Context(), c.Params("id"), payroll.AmountsPatch{
		BaseSalary: in.BaseSalary,
		Overtime:   in.Overtime,
		Bonuses:    in.Bonuses,
		Deductions: in.Deductions,
		Notes:      in.Notes,
	}))
}

// Approve godoc
// @Summary      Aprobar rol de pago (pendiente → aprobado)
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.PayrollLineResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id}/approve [post]
func (h *PayrollHandler) Approve(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Approve(c.Context(), c.Params("id")))
}

// MarkPaid godoc
// @Summary      Marcar rol como pagado (aprobado → pagado)
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.PayrollLineResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id}/pay [post]
func (h *PayrollHandler) MarkPaid(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.MarkPaid(c.Context(), c.Params("id")))
}

// Revert godoc
// @Summary      Revertir rol a pendiente
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.PayrollLineResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id}/revert [post]
func (h *PayrollHandler) Revert(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Revert(c.Context(), c.Params("id")))
}

// DownloadPayslip godoc
// @Summary      Comprobante de pago en PDF
// @Tags         payroll
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id}/payslip [get]
func (h *PayrollHandler) DownloadPayslip(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.payslip.DownloadPayslip(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	return c.Send(pdfBytes)
}

func (h *PayrollHandler) respond(c *fiber.Ctx) func(*entity.PayrollLine, error) error {
	return func(line *entity.PayrollLine, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(toPayrollLineResponse(line))
	}
}

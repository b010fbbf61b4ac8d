package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bananera-ledger/internal/application/dto"
	"github.com/jhoicas/bananera-ledger/internal/domain"
)

// statusFor traduce el código de dominio a status HTTP.
func statusFor(code string) int {
	switch code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION", "INVALID_PAYROLL_LINE", "INVALID_INSTALLMENT_COUNT":
		return fiber.StatusBadRequest
	case "INSUFFICIENT_STOCK", "OVERPAYMENT_REJECTED", "INVALID_STATE_TRANSITION",
		"CONCURRENT_MODIFICATION", "DUPLICATE":
		return fiber.StatusConflict
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con el status y código del error de dominio.
// Los errores internos no exponen su detalle.
func writeError(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	status := statusFor(code)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "cuerpo inválido")
}

// errOutOfSite se usa cuando un rol de finca intenta operar sobre otra finca.
var errOutOfSite = fmt.Errorf("%w: el recurso pertenece a otra finca", domain.ErrForbidden)

// checkSite verifica que un rol de finca solo toque recursos de su finca.
func checkSite(c *fiber.Ctx, resourceSiteID string) error {
	if isSiteScoped(c) && resourceSiteID != GetSiteID(c) {
		return errOutOfSite
	}
	return nil
}

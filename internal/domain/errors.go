package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Toda operación del núcleo falla con uno de estos errores y deja el estado intacto.
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrOverpaymentRejected     = errors.New("el pago excede el monto del préstamo")
	ErrInvalidPayrollLine      = errors.New("rol de pago inválido")
	ErrInvalidStateTransition  = errors.New("transición de estado inválida")
	ErrInvalidInstallmentCount = errors.New("número de cuotas inválido")
	ErrConcurrentModification  = errors.New("modificación concurrente, intente de nuevo")
)

// Code devuelve el código estable de un error de dominio (para logs, métricas y respuestas HTTP).
// Errores desconocidos devuelven "INTERNAL".
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrOverpaymentRejected):
		return "OVERPAYMENT_REJECTED"
	case errors.Is(err, ErrInvalidPayrollLine):
		return "INVALID_PAYROLL_LINE"
	case errors.Is(err, ErrInvalidStateTransition):
		return "INVALID_STATE_TRANSITION"
	case errors.Is(err, ErrInvalidInstallmentCount):
		return "INVALID_INSTALLMENT_COUNT"
	case errors.Is(err, ErrConcurrentModification):
		return "CONCURRENT_MODIFICATION"
	default:
		return "INTERNAL"
	}
}

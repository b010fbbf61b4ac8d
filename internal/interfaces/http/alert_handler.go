package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bananera-ledger/internal/application/dto"
	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
)

// AlertHandler reconocimiento de alertas de stock.
type AlertHandler struct {
	uc *inventory.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// Acknowledge godoc
// @Summary      Marcar alerta como leída
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/acknowledge [post]
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	id := c.Params("id")
	if isSiteScoped(c) {
		alert, err := h.uc.Get(c.Context(), id)
		if err == nil {
			err = checkSite(c, alert.SiteID)
		}
		if err != nil {
			return writeError(c, err)
		}
	}
	alert, err := h.uc.Acknowledge(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toAlertResponse(alert))
}

// AcknowledgeAll godoc
// @Summary      Marcar todas las alertas como leídas
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcknowledgeAllRequest  false  "site_id opcional"
// @Success      200   {object}  map[string]int64
// @Router       /api/alerts/acknowledge-all [post]
func (h *AlertHandler) AcknowledgeAll(c *fiber.Ctx) error {
	var in dto.AcknowledgeAllRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	n, err := h.uc.AcknowledgeAll(c.Context(), scopedSiteID(c, in.SiteID))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"acknowledged": n})
}

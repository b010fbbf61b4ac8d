package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bananera-ledger/internal/application/dto"
	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de stock, movimientos y reposición (protegido).
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	alerts        *inventory.AlertUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.LedgerUseCase,
	alerts *inventory.AlertUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, alerts: alerts, replenishment: replenishment}
}

// CreateStockRecord godoc
// @Summary      Crear registro de stock
// @Description  La cantidad inicial se registra como un movimiento de entrada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRecordRequest  true  "insumo"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [post]
func (h *InventoryHandler) CreateStockRecord(c *fiber.Ctx) error {
	var in dto.CreateStockRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	siteID := in.SiteID
	if isSiteScoped(c) {
		siteID = GetSiteID(c)
	}
	res, err := h.ledger.CreateStockRecord(c.Context(), inventory.CreateStockRecordInput{
		SiteID:           siteID,
		Name:             in.Name,
		Category:         in.Category,
		Unit:             in.Unit,
		InitialQuantity:  in.InitialQuantity,
		ReorderThreshold: in.ReorderThreshold,
		MaxCapacity:      in.MaxCapacity,
		UnitPrice:        in.UnitPrice,
		ActorID:          GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResultResponse(res))
}

// GetStockRecord godoc
// @Summary      Consultar registro de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{id} [get]
func (h *InventoryHandler) GetStockRecord(c *fiber.Ctx) error {
	record, err := h.ledger.GetStockRecord(c.Context(), c.Params("id"))
	if err == nil {
		err = checkSite(c, record.SiteID)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockRecordResponse(record))
}

// ListMovements godoc
// @Summary      Historial de movimientos de un registro
// @Description  Orden de commit, paginado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del registro"
// @Param        limit   query  int     false  "máximo 100 (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "limit y offset deben ser enteros")
	}
	page.DefaultPage()

	id := c.Params("id")
	if err := h.authorizeRecord(c, id); err != nil {
		return writeError(c, err)
	}
	movements, err := h.ledger.ListMovements(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	total := len(movements)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	items := make([]dto.MovementResponse, 0, end-start)
	for _, m := range movements[start:end] {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Entrada o salida. Una salida mayor al stock disponible se rechaza sin efectos.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del registro"
// @Param        body  body  dto.RegisterMovementRequest  true  "kind (inflow|outflow), amount, note"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id := c.Params("id")
	if err := h.authorizeRecord(c, id); err != nil {
		return writeError(c, err)
	}
	res, err := h.ledger.ApplyMovement(c.Context(), inventory.MovementInput{
		StockRecordID: id,
		Kind:          in.Kind,
		Amount:        in.Amount,
		ActorID:       GetUserID(c),
		Note:          in.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResultResponse(res))
}

// MarkOrderPlaced godoc
// @Summary      Generar orden de compra
// @Description  Marca el insumo con pedido generado. La marca se limpia cuando una entrada
//
//	devuelve el stock al mínimo.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{id}/order [post]
func (h *InventoryHandler) MarkOrderPlaced(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.authorizeRecord(c, id); err != nil {
		return writeError(c, err)
	}
	record, err := h.ledger.MarkOrderPlaced(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockRecordResponse(record))
}

// ListAlerts godoc
// @Summary      Alertas pendientes de un registro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {array}   dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{id}/alerts [get]
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.authorizeRecord(c, id); err != nil {
		return writeError(c, err)
	}
	alerts, err := h.alerts.ListUnacknowledged(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertResponse(a))
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Insumos por debajo del stock mínimo con la cantidad sugerida de pedido,
//
//	críticos primero y luego por mayor déficit.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        site_id  query  string  false  "Filtrar por finca. Vacío = todas (ignorado para roles de finca)."
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	siteID := scopedSiteID(c, c.Query("site_id"))

	list, err := h.replenishment.GenerateReplenishmentList(c.Context(), siteID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// authorizeRecord valida la finca del registro para roles de finca. El resto pasa sin lectura.
func (h *InventoryHandler) authorizeRecord(c *fiber.Ctx, id string) error {
	if !isSiteScoped(c) {
		return nil
	}
	record, err := h.ledger.GetStockRecord(c.Context(), id)
	if err != nil {
		return err
	}
	return checkSite(c, record.SiteID)
}

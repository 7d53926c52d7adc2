package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// StockHandler entradas, ajustes y consultas de stock por lote.
type StockHandler struct {
	ledger *inventory.StockLedger
	log    *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.StockLedger, log *logger.Logger) *StockHandler {
	return &StockHandler{ledger: ledger, log: log}
}

// Add godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "product_id, batch_number, quantity, expiration_date (YYYY-MM-DD)"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	var exp *time.Time
	if in.ExpirationDate != "" {
		t, err := time.Parse(time.DateOnly, in.ExpirationDate)
		if err != nil {
			return badRequest(c, "VALIDATION", "expiration_date debe tener formato YYYY-MM-DD")
		}
		exp = &t
	}
	batch, err := h.ledger.AddStock(c.UserContext(), inventory.AddStockInput{
		ProductID:      in.ProductID,
		BatchNumber:    in.BatchNumber,
		ExpirationDate: exp,
		Quantity:       in.Quantity,
		Location:       in.Location,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(batchResponse(batch))
}

// Adjust godoc
// @Summary      Ajuste manual de un lote
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, batch_id, quantity (+/-), reason"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	mov, err := h.ledger.Adjust(c.UserContext(), inventory.AdjustInput{
		ProductID: in.ProductID,
		BatchID:   in.BatchID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementResponse(mov))
}

// Available godoc
// @Summary      Stock disponible de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockAvailabilityResponse
// @Router       /api/stock/available/{productId} [get]
func (h *StockHandler) Available(c *fiber.Ctx) error {
	productID := c.Params("productId")
	n, err := h.ledger.AvailableStock(c.UserContext(), productID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.StockAvailabilityResponse{ProductID: productID, Available: n})
}

// Check godoc
// @Summary      Verificar si alcanza el stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true  "ID del producto"
// @Param        quantity   query  int     true  "Unidades base requeridas"
// @Success      200  {object}  dto.StockAvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/check/{productId} [get]
func (h *StockHandler) Check(c *fiber.Ctx) error {
	productID := c.Params("productId")
	qty := c.QueryInt("quantity", 0)
	if qty <= 0 {
		return badRequest(c, "VALIDATION", "quantity debe ser mayor a cero")
	}
	ok, err := h.ledger.HasSufficientStock(c.UserContext(), productID, qty)
	if err != nil {
		return writeError(c, h.log, err)
	}
	n, err := h.ledger.AvailableStock(c.UserContext(), productID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.StockAvailabilityResponse{ProductID: productID, Available: n, Required: qty, Sufficient: &ok})
}

// Batches godoc
// @Summary      Lotes con disponible en orden FIFO
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/stock/batches/{productId} [get]
func (h *StockHandler) Batches(c *fiber.Ctx) error {
	batches, err := h.ledger.BatchesFIFO(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(batches, batchResponse))
}

// Movements godoc
// @Summary      Movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id      query  string  false  "Producto"
// @Param        batch_id        query  string  false  "Lote"
// @Param        type            query  string  false  "in | out | reversal | adjustment"
// @Param        reference_type  query  string  false  "sale | stock_entry | adjustment | annulment"
// @Param        reference_id    query  string  false  "ID de referencia"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	movs, err := h.ledger.Movements(c.UserContext(), entity.MovementFilter{
		ProductID:     c.Query("product_id"),
		BatchID:       c.Query("batch_id"),
		Type:          c.Query("type"),
		ReferenceType: c.Query("reference_type"),
		ReferenceID:   c.Query("reference_id"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(movs, movementResponse))
}

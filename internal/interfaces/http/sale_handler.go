package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// SaleHandler ciclo de vida de ventas: creación, items, confirmación y cancelación.
type SaleHandler struct {
	ledger *sales.Ledger
	log    *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(ledger *sales.Ledger, log *logger.Logger) *SaleHandler {
	return &SaleHandler{ledger: ledger, log: log}
}

// Create godoc
// @Summary      Crear venta pendiente
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  false  "Cliente (por defecto Consumidor Final)"
// @Success      201   {object}  dto.SaleResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	sale, err := h.ledger.CreateSale(c.UserContext(), sales.CreateSaleInput{
		UserID:       GetUserID(c),
		CashierID:    in.CashierID,
		CustomerName: in.CustomerName,
		CustomerNIT:  in.CustomerNIT,
		Notes:        in.Notes,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saleResponse(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "pending | completed | annulled"
// @Param        user_id  query  string  false  "Usuario"
// @Param        from     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Tamaño de página (por defecto 50, máximo 200)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.SaleResponse
// @Header       200  {int}  X-Total-Count  "Total sin paginar"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	f := entity.SaleFilter{Status: c.Query("status"), UserID: c.Query("user_id")}
	var err error
	if f.From, f.To, err = queryRange(c); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	page, err := queryPage(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.ledger.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(paginate(c, page, out), saleResponse))
}

// Pending godoc
// @Summary      Ventas pendientes del usuario
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        all  query  bool  false  "Todas las pendientes, no solo las propias"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/pending [get]
func (h *SaleHandler) Pending(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if c.QueryBool("all", false) {
		userID = ""
	}
	out, err := h.ledger.Pending(c.UserContext(), userID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(out, saleResponse))
}

// Get godoc
// @Summary      Venta con items y estado fiscal
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	s, err := h.ledger.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(saleDetailResponse(s))
}

// AddItem godoc
// @Summary      Agregar item a una venta pendiente
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.AddSaleItemRequest  true  "product_id, presentation_id, quantity"
// @Success      201   {object}  dto.SaleItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/items [post]
func (h *SaleHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddSaleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.ledger.AddItem(c.UserContext(), c.Params("id"), sales.AddItemInput{
		ProductID:      in.ProductID,
		PresentationID: in.PresentationID,
		Quantity:       in.Quantity,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saleItemResponse(item))
}

// UpdateItem godoc
// @Summary      Cambiar la cantidad de un item
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string  true  "ID del item"
// @Param        body    body  dto.UpdateSaleItemRequest  true  "quantity"
// @Success      200     {object}  dto.SaleItemResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/sales/items/{itemId} [put]
func (h *SaleHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateSaleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.ledger.UpdateItemQuantity(c.UserContext(), c.Params("itemId"), in.Quantity)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(saleItemResponse(item))
}

// RemoveItem godoc
// @Summary      Quitar item de una venta pendiente
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del item"
// @Success      200     {object}  dto.SaleResponse
// @Router       /api/sales/items/{itemId} [delete]
func (h *SaleHandler) RemoveItem(c *fiber.Ctx) error {
	sale, err := h.ledger.RemoveItem(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(saleResponse(sale))
}

// Confirm godoc
// @Summary      Confirmar venta
// @Description  Consume stock FIFO y registra el ingreso en la caja abierta.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/confirm [post]
func (h *SaleHandler) Confirm(c *fiber.Ctx) error {
	sale, err := h.ledger.ConfirmSale(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(saleResponse(sale))
}

// Cancel godoc
// @Summary      Cancelar venta sin documento fiscal
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	sale, err := h.ledger.CancelSale(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(saleResponse(sale))
}

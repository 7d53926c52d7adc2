package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// CashBoxHandler apertura, cierre y movimientos de la caja.
type CashBoxHandler struct {
	ledger *cashbox.Ledger
	log    *logger.Logger
}

// NewCashBoxHandler construye el handler.
func NewCashBoxHandler(ledger *cashbox.Ledger, log *logger.Logger) *CashBoxHandler {
	return &CashBoxHandler{ledger: ledger, log: log}
}

// Current godoc
// @Summary      Caja abierta actual
// @Tags         cash-box
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashBoxResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash-box [get]
func (h *CashBoxHandler) Current(c *fiber.Ctx) error {
	box, err := h.openBox(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cashBoxResponse(box))
}

// Summary godoc
// @Summary      Resumen de caja
// @Description  Sin id resume la caja abierta.
// @Tags         cash-box
// @Security     Bearer
// @Produce      json
// @Param        id  query  string  false  "ID de la caja"
// @Success      200  {object}  dto.CashBoxSummaryResponse
// @Router       /api/cash-box/summary [get]
func (h *CashBoxHandler) Summary(c *fiber.Ctx) error {
	boxID, err := h.boxID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	s, err := h.ledger.Summary(c.UserContext(), boxID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(cashSummaryResponse(s))
}

// Movements godoc
// @Summary      Movimientos de caja
// @Tags         cash-box
// @Security     Bearer
// @Produce      json
// @Param        id        query  string  false  "ID de la caja (por defecto la abierta)"
// @Param        type      query  string  false  "income | expense | reversal"
// @Param        user_id   query  string  false  "Usuario"
// @Param        has_sale  query  bool    false  "Solo con venta / solo sin venta"
// @Success      200  {array}  dto.CashMovementResponse
// @Router       /api/cash-box/movements [get]
func (h *CashBoxHandler) Movements(c *fiber.Ctx) error {
	boxID, err := h.boxID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	f := entity.CashMovementFilter{Type: c.Query("type"), UserID: c.Query("user_id")}
	if v := c.Query("has_sale"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "VALIDATION", "has_sale debe ser true o false")
		}
		f.HasSale = &b
	}
	movs, err := h.ledger.Movements(c.UserContext(), boxID, f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(movs, cashMovementResponse))
}

// History godoc
// @Summary      Historial de cajas
// @Tags         cash-box
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "open | closed"
// @Param        opened_by  query  string  false  "Usuario que abrió"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Tamaño de página (por defecto 50, máximo 200)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.CashBoxResponse
// @Header       200  {int}  X-Total-Count  "Total sin paginar"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash-box/history [get]
func (h *CashBoxHandler) History(c *fiber.Ctx) error {
	f := entity.CashBoxFilter{Status: c.Query("status"), OpenedBy: c.Query("opened_by")}
	var err error
	if f.From, f.To, err = queryRange(c); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	page, err := queryPage(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	boxes, err := h.ledger.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(paginate(c, page, boxes), cashBoxResponse))
}

// Stats godoc
// @Summary      Totales de cajas en un rango
// @Tags         cash-box
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/cash-box/stats [get]
func (h *CashBoxHandler) Stats(c *fiber.Ctx) error {
	from, to, err := queryRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	if from == nil || to == nil {
		return badRequest(c, "VALIDATION", "from y to son requeridos")
	}
	s, err := h.ledger.Stats(c.UserContext(), *from, *to)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"cash_boxes":     s.CashBoxes,
		"total_income":   s.TotalIncome,
		"total_expense":  s.TotalExpense,
		"total_reversal": s.TotalReversal,
		"net_movement":   s.NetMovement,
		"from":           from.Format(time.DateOnly),
		"to":             to.Format(time.DateOnly),
	})
}

// Open godoc
// @Summary      Abrir caja
// @Tags         cash-box
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashBoxRequest  true  "opening_amount, notes"
// @Success      201   {object}  dto.CashBoxResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-box/open [post]
func (h *CashBoxHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenCashBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	box, err := h.ledger.OpenCashBox(c.UserContext(), GetUserID(c), in.OpeningAmount, in.Notes)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cashBoxResponse(box))
}

// Close godoc
// @Summary      Cerrar la caja abierta
// @Tags         cash-box
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseCashBoxRequest  false  "closing_amount (opcional), notes"
// @Success      200   {object}  dto.CloseCashBoxResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-box/close [post]
func (h *CashBoxHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseCashBoxRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	box, err := h.openBox(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	res, err := h.ledger.CloseCashBox(c.UserContext(), box.ID, GetUserID(c), in.ClosingAmount, in.Notes)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.CloseCashBoxResponse{
		CashBox:    cashBoxResponse(res.CashBox),
		Expected:   res.Expected,
		Difference: res.Difference,
	})
}

// Income godoc
// @Summary      Registrar ingreso manual
// @Tags         cash-box
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashMovementRequest  true  "amount, description"
// @Success      201   {object}  dto.CashMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-box/income [post]
func (h *CashBoxHandler) Income(c *fiber.Ctx) error {
	return h.register(c, h.ledger.RegisterIncome)
}

// Expense godoc
// @Summary      Registrar egreso
// @Tags         cash-box
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashMovementRequest  true  "amount, description"
// @Success      201   {object}  dto.CashMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-box/expense [post]
func (h *CashBoxHandler) Expense(c *fiber.Ctx) error {
	return h.register(c, h.ledger.RegisterExpense)
}

type registerFunc func(ctx context.Context, in cashbox.MovementInput) (*entity.CashMovement, error)

func (h *CashBoxHandler) register(c *fiber.Ctx, fn registerFunc) error {
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	box, err := h.openBox(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	mov, err := fn(c.UserContext(), cashbox.MovementInput{
		CashBoxID:   box.ID,
		Amount:      in.Amount,
		Description: in.Description,
		UserID:      GetUserID(c),
		SaleID:      in.SaleID,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cashMovementResponse(mov))
}

func (h *CashBoxHandler) openBox(c *fiber.Ctx) (*entity.CashBox, error) {
	box, err := h.ledger.FindOpenBox(c.UserContext())
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, domain.ErrCashBoxNotOpen
	}
	return box, nil
}

// boxID caja del query ?id= o, si falta, la abierta.
func (h *CashBoxHandler) boxID(c *fiber.Ctx) (string, error) {
	if id := c.Query("id"); id != "" {
		return id, nil
	}
	box, err := h.openBox(c)
	if err != nil {
		return "", err
	}
	return box.ID, nil
}

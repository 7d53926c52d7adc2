package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// FiscalHandler documentos fiscales (FEL) y anulaciones.
type FiscalHandler struct {
	ledger *billing.FiscalLedger
	saga   *billing.AnnulmentSaga
	log    *logger.Logger
}

// NewFiscalHandler construye el handler.
func NewFiscalHandler(ledger *billing.FiscalLedger, saga *billing.AnnulmentSaga, log *logger.Logger) *FiscalHandler {
	return &FiscalHandler{ledger: ledger, saga: saga, log: log}
}

// ListDocuments godoc
// @Summary      Listar documentos fiscales
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "authorized | annulled | rejected"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Tamaño de página (por defecto 50, máximo 200)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.FiscalDocumentResponse
// @Header       200  {int}  X-Total-Count  "Total sin paginar"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/documents [get]
func (h *FiscalHandler) ListDocuments(c *fiber.Ctx) error {
	f := entity.FiscalDocumentFilter{Status: c.Query("status")}
	var err error
	if f.From, f.To, err = queryRange(c); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	page, err := queryPage(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	docs, err := h.ledger.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(paginate(c, page, docs), fiscalDocumentResponse))
}

// GetDocument godoc
// @Summary      Documento fiscal con venta, items y anulación
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.FiscalDocumentDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fiscal/documents/{id} [get]
func (h *FiscalHandler) GetDocument(c *fiber.Ctx) error {
	d, err := h.ledger.GetDetails(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiscalDetailResponse(d))
}

// DocumentPDF godoc
// @Summary      Representación gráfica (PDF) del documento
// @Tags         fiscal
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fiscal/documents/{id}/pdf [get]
func (h *FiscalHandler) DocumentPDF(c *fiber.Ctx) error {
	data, name, err := h.ledger.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
	return c.Send(data)
}

// InvoiceData godoc
// @Summary      Datos de factura de una venta
// @Description  Devuelve lo que se enviaría al certificador, sin emitir nada.
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.InvoiceDataResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fiscal/sales/{id}/invoice-data [get]
func (h *FiscalHandler) InvoiceData(c *fiber.Ctx) error {
	p, err := h.ledger.GenerateInvoiceData(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(invoiceDataResponse(p))
}

// Register godoc
// @Summary      Emitir documento fiscal de una venta
// @Tags         fiscal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.RegisterFiscalDocumentRequest  false  "additional_data"
// @Success      201   {object}  dto.FiscalDocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/fiscal/sales/{id}/register [post]
func (h *FiscalHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterFiscalDocumentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	doc, err := h.ledger.RegisterFiscalDocument(c.UserContext(), c.Params("id"), in.AdditionalData)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiscalDocumentResponse(doc))
}

// Annul godoc
// @Summary      Anular venta facturada
// @Description  Revierte stock, anula el documento y la venta y registra la reversión en caja.
// @Tags         fiscal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.AnnulSaleRequest  true  "reason"
// @Success      200   {object}  dto.AnnulmentResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fiscal/sales/{id}/annul [post]
func (h *FiscalHandler) Annul(c *fiber.Ctx) error {
	var in dto.AnnulSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.saga.AnnulSale(c.UserContext(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(annulmentResultResponse(res))
}

// CanAnnul godoc
// @Summary      Verificar si una venta puede anularse
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.CanAnnulResponse
// @Router       /api/fiscal/sales/{id}/can-annul [get]
func (h *FiscalHandler) CanAnnul(c *fiber.Ctx) error {
	ok, reason := h.saga.CanAnnulSale(c.UserContext(), c.Params("id"))
	return c.JSON(dto.CanAnnulResponse{CanAnnul: ok, Reason: reason})
}

// ListAnnulments godoc
// @Summary      Listar anulaciones
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "pending | approved | rejected"
// @Param        user_id  query  string  false  "Usuario"
// @Param        from     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Tamaño de página (por defecto 50, máximo 200)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.AnnulmentResponse
// @Header       200  {int}  X-Total-Count  "Total sin paginar"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/annulments [get]
func (h *FiscalHandler) ListAnnulments(c *fiber.Ctx) error {
	from, to, err := queryRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	page, err := queryPage(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.saga.List(c.UserContext(), entity.AnnulmentFilter{
		Status: c.Query("status"),
		UserID: c.Query("user_id"),
		From:   from,
		To:     to,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(paginate(c, page, out), annulmentResponse))
}

// AnnulmentStats godoc
// @Summary      Conteo de anulaciones por estado
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.AnnulmentStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/annulments/stats [get]
func (h *FiscalHandler) AnnulmentStats(c *fiber.Ctx) error {
	from, to, err := queryRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	s, err := h.saga.Stats(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.AnnulmentStatsResponse{
		Total:        s.Total,
		Pending:      s.Pending,
		Approved:     s.Approved,
		Rejected:     s.Rejected,
		ApprovalRate: s.ApprovalRate,
	})
}

// GetAnnulment godoc
// @Summary      Anulación con documento y venta
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la anulación"
// @Success      200  {object}  dto.AnnulmentDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fiscal/annulments/{id} [get]
func (h *FiscalHandler) GetAnnulment(c *fiber.Ctx) error {
	d, err := h.saga.GetDetails(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(annulmentDetailResponse(d))
}

// PendingAnnulments godoc
// @Summary      Anulaciones pendientes
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AnnulmentResponse
// @Router       /api/fiscal/annulments/pending [get]
func (h *FiscalHandler) PendingAnnulments(c *fiber.Ctx) error {
	out, err := h.saga.Pending(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapSlice(out, annulmentResponse))
}

// DocumentStats godoc
// @Summary      Conteo de documentos fiscales por estado
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.FiscalStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fiscal/documents/stats [get]
func (h *FiscalHandler) DocumentStats(c *fiber.Ctx) error {
	from, to, err := queryRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	s, err := h.ledger.Stats(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FiscalStatsResponse{
		Total:       s.Total,
		Pending:     s.Pending,
		Authorized:  s.Authorized,
		Annulled:    s.Annulled,
		Rejected:    s.Rejected,
		SuccessRate: s.SuccessRate,
	})
}

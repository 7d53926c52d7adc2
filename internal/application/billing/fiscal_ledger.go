package billing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/fel"
	"github.com/jhoicas/Ventas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// FiscalConfig datos fijos del emisor y parámetros de certificación.
type FiscalConfig struct {
	Seller         Seller
	Currency       string
	DocumentType   string
	CertifyTimeout time.Duration
	PDFDir         string // vacío = no guardar PDF
}

// FiscalDetails documento fiscal con su venta e items.
type FiscalDetails struct {
	Document  *entity.FiscalDocument
	Sale      *entity.Sale
	Items     []*entity.SaleItem
	Annulment *entity.Annulment
}

// FiscalStats conteos por estado y tasa de éxito (porcentaje de autorizados).
type FiscalStats struct {
	Total       int
	Pending     int
	Authorized  int
	Annulled    int
	Rejected    int
	SuccessRate decimal.Decimal
}

// FiscalLedger documentos fiscales: emisión (delegando la firma al Certifier) y cambios de estado.
type FiscalLedger struct {
	txRunner  ports.TxRunner
	certifier Certifier
	pdf       FiscalPDFGenerator
	clock     ports.Clock
	cfg       FiscalConfig
	log       *logger.Logger
}

// NewFiscalLedger construye el libro fiscal. pdf y log pueden ser nil.
func NewFiscalLedger(txRunner ports.TxRunner, certifier Certifier, pdf FiscalPDFGenerator, clock ports.Clock, cfg FiscalConfig, log *logger.Logger) *FiscalLedger {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Currency == "" {
		cfg.Currency = fel.CurrencyGTQ
	}
	if cfg.DocumentType == "" {
		cfg.DocumentType = fel.DocumentFACT
	}
	if cfg.Seller.Country == "" {
		cfg.Seller.Country = fel.CountryGT
	}
	if cfg.CertifyTimeout <= 0 {
		cfg.CertifyTimeout = 30 * time.Second
	}
	return &FiscalLedger{txRunner: txRunner, certifier: certifier, pdf: pdf, clock: clock, cfg: cfg, log: log}
}

// RegisterFiscalDocument certifica la venta completada y crea su documento autorizado.
// La llamada al certificador ocurre fuera de toda transacción; si falla no se crea nada.
func (l *FiscalLedger) RegisterFiscalDocument(ctx context.Context, saleID string, additional map[string]string) (*entity.FiscalDocument, error) {
	var payload InvoicePayload
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := l.certifiableSale(ctx, r, saleID)
		if err != nil {
			return err
		}
		items, err := r.Sales.ListItems(ctx, sale.ID)
		if err != nil {
			return err
		}
		payload = l.buildPayload(sale, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(additional) > 0 {
		payload.Additional = additional
	}
	if err := l.ValidateInvoiceData(payload); err != nil {
		return nil, err
	}

	certCtx, cancel := context.WithTimeout(ctx, l.cfg.CertifyTimeout)
	defer cancel()
	certified, err := l.certifier.Sign(certCtx, payload)
	if err != nil {
		l.log.Error().Err(err).Str("sale_id", saleID).Msg("certificación FEL fallida")
		if errors.Is(err, domain.ErrExternalService) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	now := l.clock.Now()
	doc := &entity.FiscalDocument{
		ID:             uuid.New().String(),
		SaleID:         saleID,
		UUID:           certified.UUID,
		Serie:          certified.Serie,
		Number:         certified.Number,
		DocumentType:   payload.DocumentType,
		Status:         entity.FiscalStatusAuthorized,
		SignedXML:      certified.SignedDocument,
		PDFRef:         certified.PDFRef,
		AdditionalData: payload.Additional,
		CertifiedAt:    &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if doc.PDFRef == "" {
		doc.PDFRef = l.storePDF(ctx, doc, payload)
	}

	err = l.txRunner.Run(ctx, func(r ports.Repos) error {
		if _, err := l.certifiableSale(ctx, r, saleID); err != nil {
			return err
		}
		return r.FiscalDocuments.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("sale_id", saleID).Str("uuid", doc.UUID).Str("serie", doc.Serie).Str("numero", doc.Number).
		Msg("documento fiscal autorizado")
	return doc, nil
}

// certifiableSale venta bloqueada, completada y sin documento.
func (l *FiscalLedger) certifiableSale(ctx context.Context, r ports.Repos, saleID string) (*entity.Sale, error) {
	sale, err := r.Sales.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusCompleted {
		return nil, domain.NewError(domain.ErrConflict, "solo se pueden facturar ventas completadas")
	}
	existing, err := r.FiscalDocuments.GetBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyHasDocument
	}
	return sale, nil
}

// storePDF genera y guarda el PDF; un fallo se registra y no impide la emisión.
func (l *FiscalLedger) storePDF(ctx context.Context, doc *entity.FiscalDocument, payload InvoicePayload) string {
	if l.pdf == nil || l.cfg.PDFDir == "" {
		return ""
	}
	data, err := l.pdf.GenerateFiscalPDF(ctx, doc, payload)
	if err != nil {
		l.log.Warn().Err(err).Str("uuid", doc.UUID).Msg("no se pudo generar el PDF")
		return ""
	}
	if err := os.MkdirAll(l.cfg.PDFDir, 0o755); err != nil {
		l.log.Warn().Err(err).Str("dir", l.cfg.PDFDir).Msg("no se pudo crear el directorio de PDFs")
		return ""
	}
	path := filepath.Join(l.cfg.PDFDir, doc.UUID+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		l.log.Warn().Err(err).Str("path", path).Msg("no se pudo guardar el PDF")
		return ""
	}
	return path
}

// GenerateInvoiceData arma el payload del DTE a partir de la venta.
func (l *FiscalLedger) GenerateInvoiceData(ctx context.Context, saleID string) (*InvoicePayload, error) {
	var payload InvoicePayload
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := r.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		items, err := r.Sales.ListItems(ctx, saleID)
		if err != nil {
			return err
		}
		payload = l.buildPayload(sale, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

func (l *FiscalLedger) buildPayload(sale *entity.Sale, items []*entity.SaleItem) InvoicePayload {
	buyer := Buyer{NIT: fel.ConsumidorFinal, Name: entity.DefaultCustomerName}
	if nit := fel.NormalizeNIT(sale.CustomerNIT); nit != "" && nit != fel.ConsumidorFinal {
		buyer.NIT = nit
		buyer.Name = sale.CustomerName
	}
	p := InvoicePayload{
		SaleID:       sale.ID,
		DocumentType: l.cfg.DocumentType,
		Currency:     l.cfg.Currency,
		IssuedAt:     l.clock.Now(),
		Seller:       l.cfg.Seller,
		Buyer:        buyer,
		Lines:        make([]InvoiceLine, 0, len(items)),
		Subtotal:     sale.Subtotal,
		Tax:          sale.Tax,
		Total:        sale.Total,
	}
	taxRate := decimal.Zero
	if sale.Subtotal.IsPositive() {
		taxRate = sale.Tax.Div(sale.Subtotal)
	}
	for i, it := range items {
		p.Lines = append(p.Lines, InvoiceLine{
			LineNumber:  i + 1,
			ItemType:    fel.ItemGood,
			Quantity:    it.Quantity,
			Unit:        fel.UnitDefault,
			Description: it.ProductName + " - " + it.PresentationName,
			UnitPrice:   it.UnitPrice,
			Discount:    decimal.Zero,
			Total:       it.Total,
			TaxableBase: it.Total,
			TaxAmount:   it.Total.Mul(taxRate).Round(2),
		})
	}
	return p
}

// ValidateInvoiceData NIT del emisor válido, tipo de documento conocido, al menos un ítem y total positivo.
func (l *FiscalLedger) ValidateInvoiceData(p InvoicePayload) error {
	var problems []string
	if p.Seller.NIT == "" {
		problems = append(problems, "NIT del emisor no configurado")
	} else if err := fel.ValidateNIT(p.Seller.NIT); err != nil {
		problems = append(problems, err.Error())
	}
	if p.Seller.Name == "" {
		problems = append(problems, "nombre del emisor no configurado")
	}
	if err := fel.ValidateNIT(p.Buyer.NIT); err != nil {
		problems = append(problems, "NIT del receptor: "+err.Error())
	}
	if !fel.IsValidDocumentType(p.DocumentType) {
		problems = append(problems, "tipo de documento inválido: "+p.DocumentType)
	}
	if len(p.Lines) == 0 {
		problems = append(problems, "la factura no tiene ítems")
	}
	if !p.Total.IsPositive() {
		problems = append(problems, "el total debe ser mayor a cero")
	}
	if len(problems) > 0 {
		return domain.NewError(domain.ErrInvalidInput, "datos de factura inválidos: "+strings.Join(problems, "; "))
	}
	return nil
}

// MarkAsAnnulled pasa un documento autorizado a anulado.
func (l *FiscalLedger) MarkAsAnnulled(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	var doc *entity.FiscalDocument
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		doc, err = r.FiscalDocuments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		return l.MarkAsAnnulledInTx(ctx, r, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// MarkAsAnnulledInTx igual que MarkAsAnnulled dentro de la transacción del caller.
func (l *FiscalLedger) MarkAsAnnulledInTx(ctx context.Context, r ports.Repos, doc *entity.FiscalDocument) error {
	if doc.Status != entity.FiscalStatusAuthorized {
		return domain.ErrNotAuthorized
	}
	now := l.clock.Now()
	doc.Status = entity.FiscalStatusAnnulled
	doc.AnnulledAt = &now
	doc.UpdatedAt = now
	return r.FiscalDocuments.UpdateStatus(ctx, doc)
}

// MarkAsRejected marca el documento como rechazado; no aplica a anulados ni rechazados.
func (l *FiscalLedger) MarkAsRejected(ctx context.Context, id, reason string) (*entity.FiscalDocument, error) {
	var doc *entity.FiscalDocument
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		doc, err = r.FiscalDocuments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		switch doc.Status {
		case entity.FiscalStatusAnnulled:
			return domain.ErrDocumentAlreadyAnnulled
		case entity.FiscalStatusRejected:
			return domain.ErrDocumentAlreadyRejected
		}
		doc.Status = entity.FiscalStatusRejected
		doc.RejectionReason = reason
		doc.UpdatedAt = l.clock.Now()
		return r.FiscalDocuments.UpdateStatus(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	l.log.Warn().Str("uuid", doc.UUID).Str("motivo", reason).Msg("documento fiscal rechazado")
	return doc, nil
}

// GetBySale documento de una venta o nil.
func (l *FiscalLedger) GetBySale(ctx context.Context, saleID string) (*entity.FiscalDocument, error) {
	var doc *entity.FiscalDocument
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		doc, err = r.FiscalDocuments.GetBySaleID(ctx, saleID)
		return err
	})
	return doc, err
}

// GetDetails documento con venta, items y anulación.
func (l *FiscalLedger) GetDetails(ctx context.Context, id string) (*FiscalDetails, error) {
	var d *FiscalDetails
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		doc, err := r.FiscalDocuments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		sale, err := r.Sales.GetByID(ctx, doc.SaleID)
		if err != nil {
			return err
		}
		items, err := r.Sales.ListItems(ctx, doc.SaleID)
		if err != nil {
			return err
		}
		ann, err := r.Annulments.GetByFiscalDocumentID(ctx, doc.ID)
		if err != nil {
			return err
		}
		d = &FiscalDetails{Document: doc, Sale: sale, Items: items, Annulment: ann}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List documentos fiscales con filtros.
func (l *FiscalLedger) List(ctx context.Context, f entity.FiscalDocumentFilter) ([]*entity.FiscalDocument, error) {
	var out []*entity.FiscalDocument
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		out, err = r.FiscalDocuments.List(ctx, f)
		return err
	})
	return out, err
}

// PDF genera la representación gráfica del documento al vuelo.
func (l *FiscalLedger) PDF(ctx context.Context, id string) ([]byte, string, error) {
	if l.pdf == nil {
		return nil, "", domain.NewError(domain.ErrInvalidInput, "generador de PDF no configurado")
	}
	d, err := l.GetDetails(ctx, id)
	if err != nil {
		return nil, "", err
	}
	payload := l.buildPayload(d.Sale, d.Items)
	if d.Document.CertifiedAt != nil {
		payload.IssuedAt = *d.Document.CertifiedAt
	}
	data, err := l.pdf.GenerateFiscalPDF(ctx, d.Document, payload)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	return data, fmt.Sprintf("%s-%s.pdf", d.Document.Serie, d.Document.Number), nil
}

// Stats conteos de documentos creados en [from, to]; nil no acota.
func (l *FiscalLedger) Stats(ctx context.Context, from, to *time.Time) (*FiscalStats, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	var counts map[string]int
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		counts, err = r.FiscalDocuments.CountByStatus(ctx, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	st := &FiscalStats{
		Pending:    counts[entity.FiscalStatusPending],
		Authorized: counts[entity.FiscalStatusAuthorized],
		Annulled:   counts[entity.FiscalStatusAnnulled],
		Rejected:   counts[entity.FiscalStatusRejected],
	}
	st.Total = st.Pending + st.Authorized + st.Annulled + st.Rejected
	st.SuccessRate = percent(st.Authorized, st.Total)
	return st, nil
}

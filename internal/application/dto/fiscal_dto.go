package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterFiscalDocumentRequest datos adicionales que viajan en la adenda del DTE.
type RegisterFiscalDocumentRequest struct {
	AdditionalData map[string]string `json:"additional_data"`
}

// AnnulSaleRequest motivo de la anulación.
type AnnulSaleRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// FiscalDocumentResponse documento fiscal certificado.
type FiscalDocumentResponse struct {
	ID              string            `json:"id"`
	SaleID          string            `json:"sale_id"`
	UUID            string            `json:"uuid"`
	Serie           string            `json:"serie"`
	Number          string            `json:"number"`
	DocumentType    string            `json:"document_type"`
	Status          string            `json:"status"`
	PDFRef          string            `json:"pdf_ref,omitempty"`
	AdditionalData  map[string]string `json:"additional_data,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	CertifiedAt     *time.Time        `json:"certified_at,omitempty"`
	AnnulledAt      *time.Time        `json:"annulled_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// FiscalDocumentDetailResponse documento con su venta, items y anulación.
type FiscalDocumentDetailResponse struct {
	Document  FiscalDocumentResponse `json:"document"`
	Sale      *SaleResponse          `json:"sale,omitempty"`
	Items     []SaleItemResponse     `json:"items"`
	Annulment *AnnulmentResponse     `json:"annulment,omitempty"`
}

// InvoiceLineResponse línea del DTE.
type InvoiceLineResponse struct {
	LineNumber  int             `json:"line_number"`
	ItemType    string          `json:"item_type"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	TaxableBase decimal.Decimal `json:"taxable_base"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// InvoiceDataResponse datos que se enviarían al certificador.
type InvoiceDataResponse struct {
	SaleID       string                `json:"sale_id"`
	DocumentType string                `json:"document_type"`
	Currency     string                `json:"currency"`
	IssuedAt     time.Time             `json:"issued_at"`
	SellerNIT    string                `json:"seller_nit"`
	SellerName   string                `json:"seller_name"`
	BuyerNIT     string                `json:"buyer_nit"`
	BuyerName    string                `json:"buyer_name"`
	Lines        []InvoiceLineResponse `json:"lines"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Tax          decimal.Decimal       `json:"tax"`
	Total        decimal.Decimal       `json:"total"`
}

// AnnulmentResponse anulación de un documento fiscal.
type AnnulmentResponse struct {
	ID               string     `json:"id"`
	FiscalDocumentID string     `json:"fiscal_document_id"`
	SaleID           string     `json:"sale_id"`
	UserID           string     `json:"user_id"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// AnnulmentResultResponse resultado de una anulación aprobada.
type AnnulmentResultResponse struct {
	Annulment       AnnulmentResponse      `json:"annulment"`
	Sale            SaleResponse           `json:"sale"`
	FiscalDocument  FiscalDocumentResponse `json:"fiscal_document"`
	RevertedBatches int                    `json:"reverted_batches"`
	CashReversal    *CashMovementResponse  `json:"cash_reversal,omitempty"`
}

// AnnulmentDetailResponse anulación con documento y venta.
type AnnulmentDetailResponse struct {
	Annulment      AnnulmentResponse       `json:"annulment"`
	FiscalDocument *FiscalDocumentResponse `json:"fiscal_document,omitempty"`
	Sale           *SaleResponse           `json:"sale,omitempty"`
}

// CanAnnulResponse resultado de la verificación previa a anular.
type CanAnnulResponse struct {
	CanAnnul bool   `json:"can_annul"`
	Reason   string `json:"reason"`
}

// AnnulmentStatsResponse conteos por estado.
type AnnulmentStatsResponse struct {
	Total        int             `json:"total"`
	Pending      int             `json:"pending"`
	Approved     int             `json:"approved"`
	Rejected     int             `json:"rejected"`
	ApprovalRate decimal.Decimal `json:"approval_rate"`
}

// FiscalStatsResponse conteos de documentos fiscales por estado.
type FiscalStatsResponse struct {
	Total       int             `json:"total"`
	Pending     int             `json:"pending"`
	Authorized  int             `json:"authorized"`
	Annulled    int             `json:"annulled"`
	Rejected    int             `json:"rejected"`
	SuccessRate decimal.Decimal `json:"success_rate"`
}

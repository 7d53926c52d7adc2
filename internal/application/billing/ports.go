package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Seller datos del emisor (configuración FEL).
type Seller struct {
	NIT          string
	Name         string
	TradeName    string
	Address      string
	PostalCode   string
	Department   string
	Municipality string
	Country      string
	Email        string
}

// Buyer receptor de la factura.
type Buyer struct {
	NIT  string
	Name string
}

// InvoiceLine línea del DTE.
type InvoiceLine struct {
	LineNumber  int
	ItemType    string // B = bien, S = servicio
	Quantity    int
	Unit        string
	Description string
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	TaxableBase decimal.Decimal
	TaxAmount   decimal.Decimal
}

// InvoicePayload datos que se envían al certificador.
type InvoicePayload struct {
	SaleID       string
	DocumentType string
	Currency     string
	IssuedAt     time.Time
	Seller       Seller
	Buyer        Buyer
	Lines        []InvoiceLine
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Additional   map[string]string
}

// CertifiedDocument respuesta del certificador. PDFRef es opcional.
type CertifiedDocument struct {
	UUID           string
	Serie          string
	Number         string
	SignedDocument string
	PDFRef         string
}

// Certifier firma y certifica un DTE ante la SAT (o lo simula).
// Un error aborta la creación del documento fiscal.
type Certifier interface {
	Sign(ctx context.Context, payload InvoicePayload) (*CertifiedDocument, error)
}

// FiscalPDFGenerator genera la representación gráfica de un documento fiscal.
type FiscalPDFGenerator interface {
	GenerateFiscalPDF(ctx context.Context, doc *entity.FiscalDocument, payload InvoicePayload) ([]byte, error)
}

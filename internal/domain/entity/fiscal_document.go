package entity

import "time"

// Estados del documento fiscal (FEL).
const (
	FiscalStatusPending    = "pending"
	FiscalStatusAuthorized = "authorized"
	FiscalStatusAnnulled   = "annulled"
	FiscalStatusRejected   = "rejected"
)

// Estados de una anulación.
const (
	AnnulmentStatusPending  = "pending"
	AnnulmentStatusApproved = "approved"
	AnnulmentStatusRejected = "rejected"
)

// FiscalDocument factura electrónica certificada de una venta (una por venta).
type FiscalDocument struct {
	ID              string
	SaleID          string
	UUID            string // número de autorización emitido por el certificador
	Serie           string
	Number          string
	DocumentType    string
	Status          string
	SignedXML       string
	PDFRef          string
	AdditionalData  map[string]string
	RejectionReason string
	CertifiedAt     *time.Time
	AnnulledAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanBeAnnulled solo un documento autorizado admite anulación. La unicidad de la
// anulación la garantiza el repositorio (una por documento).
func (d FiscalDocument) CanBeAnnulled() bool {
	return d.Status == FiscalStatusAuthorized
}

// Annulment anulación de un documento fiscal (a lo sumo una por documento).
type Annulment struct {
	ID               string
	FiscalDocumentID string
	SaleID           string
	UserID           string
	Reason           string
	Status           string
	ErrorMessage     string
	ProcessedAt      *time.Time
	CreatedAt        time.Time
}

// FiscalDocumentFilter filtros para listar documentos fiscales.
type FiscalDocumentFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

// AnnulmentFilter filtros para listar anulaciones.
type AnnulmentFilter struct {
	Status string
	UserID string
	From   *time.Time
	To     *time.Time
}

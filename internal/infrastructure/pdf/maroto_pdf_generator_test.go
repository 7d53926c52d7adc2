package pdf

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "Q 0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "Q 55.00", formatMoney(decimal.RequireFromString("55")))
	assert.Equal(t, "Q 1,234.50", formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "Q 1,000,000.00", formatMoney(decimal.RequireFromString("1000000")))
}

func TestVerificationURL(t *testing.T) {
	doc := &entity.FiscalDocument{UUID: "ABC"}
	p := billing.InvoicePayload{
		Seller: billing.Seller{NIT: "1234567-9"},
		Total:  decimal.RequireFromString("56"),
	}
	u := verificationURL(doc, p)
	assert.True(t, strings.HasPrefix(u, verificadorSAT))
	assert.Contains(t, u, "numero=ABC")
	assert.Contains(t, u, "receptor=CF")
	assert.Contains(t, u, "monto=56.00")
}

func TestGenerateFiscalPDF(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	doc := &entity.FiscalDocument{
		UUID: "UUID-1", Serie: "FACT", Number: "00000001", DocumentType: "FACT",
		Status: entity.FiscalStatusAuthorized, CertifiedAt: &now,
	}
	p := billing.InvoicePayload{
		IssuedAt: now,
		Seller:   billing.Seller{NIT: "12345679", Name: "Mi Empresa S.A."},
		Buyer:    billing.Buyer{NIT: "CF", Name: "Consumidor Final"},
		Lines: []billing.InvoiceLine{{
			LineNumber: 1, Quantity: 2, Description: "Coca Cola - Unidad",
			UnitPrice: decimal.RequireFromString("5"), Total: decimal.RequireFromString("10"),
		}},
		Subtotal: decimal.RequireFromString("10"),
		Tax:      decimal.RequireFromString("1.20"),
		Total:    decimal.RequireFromString("11.20"),
	}

	out, err := NewMarotoPDFGenerator().GenerateFiscalPDF(context.Background(), doc, p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

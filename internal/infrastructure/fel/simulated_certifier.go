package fel

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	pkgfel "github.com/jhoicas/Ventas-api/pkg/fel"
)

var _ billing.Certifier = (*SimulatedCertifier)(nil)

// SimulatedCertifier certificador local para desarrollo: asigna UUID, serie FACT y un número de 8 dígitos.
// Si hay certificado, el DTE devuelto va firmado.
type SimulatedCertifier struct {
	builder *DTEBuilder
	signer  pkgfel.Signer
	cert    *tls.Certificate
	clock   ports.Clock
}

// NewSimulatedCertifier construye el certificador simulado. cert puede ser nil.
func NewSimulatedCertifier(signer pkgfel.Signer, cert *tls.Certificate, clock ports.Clock) *SimulatedCertifier {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &SimulatedCertifier{builder: NewDTEBuilder(), signer: signer, cert: cert, clock: clock}
}

// Sign arma el DTE certificado.
func (c *SimulatedCertifier) Sign(ctx context.Context, p billing.InvoicePayload) (*billing.CertifiedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(999999))
	if err != nil {
		return nil, fmt.Errorf("fel: generar número: %w", err)
	}
	auth := &Authorization{
		UUID:        uuid.New().String(),
		Serie:       SerieSimulated,
		Number:      fmt.Sprintf("%08d", n.Int64()+1),
		CertifiedAt: c.clock.Now(),
	}
	xmlBytes, err := c.builder.Build(p, auth)
	if err != nil {
		return nil, err
	}
	if c.cert != nil && c.signer != nil {
		if xmlBytes, err = c.signer.Sign(xmlBytes, *c.cert); err != nil {
			return nil, err
		}
	}
	return &billing.CertifiedDocument{
		UUID:           auth.UUID,
		Serie:          auth.Serie,
		Number:         auth.Number,
		SignedDocument: string(xmlBytes),
	}, nil
}

package fel

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/billing"
	pkgfel "github.com/jhoicas/Ventas-api/pkg/fel"
)

var _ billing.Certifier = (*HTTPCertifier)(nil)

// HTTPConfig parámetros del certificador remoto.
type HTTPConfig struct {
	URL       string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// HTTPCertifier envía el DTE (firmado si hay certificado) al certificador por HTTP.
type HTTPCertifier struct {
	cfg        HTTPConfig
	builder    *DTEBuilder
	signer     pkgfel.Signer
	cert       *tls.Certificate
	httpClient *http.Client
}

// NewHTTPCertifier construye el cliente. cert puede ser nil.
func NewHTTPCertifier(cfg HTTPConfig, signer pkgfel.Signer, cert *tls.Certificate) *HTTPCertifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPCertifier{
		cfg:        cfg,
		builder:    NewDTEBuilder(),
		signer:     signer,
		cert:       cert,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type certifyRequest struct {
	NITEmisor    string `json:"nit_emisor"`
	DocumentType string `json:"tipo_documento"`
	Reference    string `json:"referencia"`
	XMLDTE       string `json:"xml_dte"` // base64
}

type certifyResponse struct {
	Success      bool   `json:"resultado"`
	UUID         string `json:"uuid"`
	Serie        string `json:"serie"`
	Number       string `json:"numero"`
	XMLCertified string `json:"xml_certificado"` // base64
	PDFURL       string `json:"pdf_url"`
	Description  string `json:"descripcion"`
	Errors       []struct {
		Code    string `json:"codigo"`
		Message string `json:"mensaje"`
	} `json:"errores"`
}

// Sign certifica el DTE con el servicio remoto.
func (c *HTTPCertifier) Sign(ctx context.Context, p billing.InvoicePayload) (*billing.CertifiedDocument, error) {
	xmlBytes, err := c.builder.Build(p, nil)
	if err != nil {
		return nil, err
	}
	if c.cert != nil && c.signer != nil {
		if xmlBytes, err = c.signer.Sign(xmlBytes, *c.cert); err != nil {
			return nil, err
		}
	}
	body, err := json.Marshal(certifyRequest{
		NITEmisor:    pkgfel.NormalizeNIT(p.Seller.NIT),
		DocumentType: p.DocumentType,
		Reference:    p.SaleID,
		XMLDTE:       base64.StdEncoding.EncodeToString(xmlBytes),
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fel: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	req.Header.Set("X-API-Secret", c.cfg.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fel: llamada al certificador: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("fel: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fel: certificador respondió %d: %s", resp.StatusCode, truncate(string(raw), 300))
	}
	var out certifyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("fel: respuesta inválida: %w", err)
	}
	if !out.Success || out.UUID == "" {
		msg := out.Description
		for _, e := range out.Errors {
			msg += fmt.Sprintf(" [%s] %s", e.Code, e.Message)
		}
		return nil, fmt.Errorf("fel: documento rechazado por el certificador:%s", prefixSpace(msg))
	}
	signed := string(xmlBytes)
	if out.XMLCertified != "" {
		decoded, err := base64.StdEncoding.DecodeString(out.XMLCertified)
		if err != nil {
			return nil, fmt.Errorf("fel: xml_certificado no es base64: %w", err)
		}
		signed = string(decoded)
	}
	return &billing.CertifiedDocument{
		UUID:           out.UUID,
		Serie:          out.Serie,
		Number:         out.Number,
		SignedDocument: signed,
		PDFRef:         out.PDFURL,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func prefixSpace(s string) string {
	if s == "" || s[0] == ' ' {
		return s
	}
	return " " + s
}

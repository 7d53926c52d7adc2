package fel

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() billing.InvoicePayload {
	return billing.InvoicePayload{
		SaleID:       "sale-1",
		DocumentType: "FACT",
		Currency:     "GTQ",
		IssuedAt:     time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Seller: billing.Seller{
			NIT: "1234567-9", Name: "Mi Empresa S.A.", TradeName: "Mi Empresa",
			Address: "Ciudad", PostalCode: "01001", Department: "Guatemala", Municipality: "Guatemala", Country: "GT",
		},
		Buyer: billing.Buyer{NIT: "CF", Name: "Consumidor Final"},
		Lines: []billing.InvoiceLine{{
			LineNumber: 1, ItemType: "B", Quantity: 2, Unit: "UND",
			Description: "Cafe\u0301 - Unidad",
			UnitPrice:   decimal.RequireFromString("25.00"), Total: decimal.RequireFromString("50.00"),
			TaxableBase: decimal.RequireFromString("44.64"), TaxAmount: decimal.RequireFromString("5.36"),
		}},
		Subtotal: decimal.RequireFromString("50.00"),
		Tax:      decimal.RequireFromString("6.00"),
		Total:    decimal.RequireFromString("56.00"),
	}
}

func selfSignedCert(t *testing.T) tls.Certificate {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "Mi Empresa"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tpl, tpl, &key.PublicKey, key)
	require.NoError(t, err)
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

func TestDTEBuilder_Build(t *testing.T) {
	out, err := NewDTEBuilder().Build(samplePayload(), &Authorization{
		UUID: "ABC-123", Serie: "FACT", Number: "00000042", CertifiedAt: time.Now(),
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	emisor := doc.FindElement("//dte:Emisor")
	require.NotNil(t, emisor)
	assert.Equal(t, "12345679", emisor.SelectAttrValue("NITEmisor", ""))

	receptor := doc.FindElement("//dte:Receptor")
	require.NotNil(t, receptor)
	assert.Equal(t, "CF", receptor.SelectAttrValue("IDReceptor", ""))

	desc := doc.FindElement("//dte:Item/dte:Descripcion")
	require.NotNil(t, desc)
	assert.Equal(t, "Caf\u00e9 - Unidad", desc.Text(), "la descripción se normaliza a NFC")

	assert.Equal(t, "56.00", doc.FindElement("//dte:GranTotal").Text())
	na := doc.FindElement("//dte:NumeroAutorizacion")
	require.NotNil(t, na)
	assert.Equal(t, "ABC-123", na.Text())
	assert.Equal(t, "00000042", na.SelectAttrValue("Numero", ""))
}

func TestDTEBuilder_SinItems(t *testing.T) {
	p := samplePayload()
	p.Lines = nil
	_, err := NewDTEBuilder().Build(p, nil)
	assert.Error(t, err)
}

func TestXMLDSigSigner_Sign(t *testing.T) {
	xmlBytes, err := NewDTEBuilder().Build(samplePayload(), nil)
	require.NoError(t, err)

	signed, err := NewXMLDSigSigner().Sign(xmlBytes, selfSignedCert(t))
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(signed))
	sig := doc.FindElement("//dte:SAT/ds:Signature")
	require.NotNil(t, sig, "la firma se agrega dentro de dte:SAT")
	ref := sig.FindElement(".//ds:Reference")
	require.NotNil(t, ref)
	assert.Equal(t, "#DatosEmision", ref.SelectAttrValue("URI", ""))
	assert.NotEmpty(t, sig.FindElement(".//ds:SignatureValue").Text())
}

func TestXMLDSigSigner_SinLlave(t *testing.T) {
	_, err := NewXMLDSigSigner().Sign([]byte("<a/>"), tls.Certificate{})
	assert.Error(t, err)
}

func TestSimulatedCertifier_Sign(t *testing.T) {
	clock := &ports.FixedClock{T: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
	c := NewSimulatedCertifier(NewXMLDSigSigner(), nil, clock)

	doc, err := c.Sign(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "FACT", doc.Serie)
	assert.Regexp(t, regexp.MustCompile(`^\d{8}$`), doc.Number)
	assert.Len(t, doc.UUID, 36)
	assert.Contains(t, doc.SignedDocument, doc.UUID)
	assert.NotContains(t, doc.SignedDocument, "ds:Signature", "sin certificado no se firma")
}

func TestSimulatedCertifier_ConCertificado(t *testing.T) {
	cert := selfSignedCert(t)
	c := NewSimulatedCertifier(NewXMLDSigSigner(), &cert, nil)

	doc, err := c.Sign(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Contains(t, doc.SignedDocument, "ds:SignatureValue")
}

func TestSimulatedCertifier_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSimulatedCertifier(nil, nil, nil).Sign(ctx, samplePayload())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPCertifier_Sign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Secret"))
		var req certifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sale-1", req.Reference)
		raw, err := base64.StdEncoding.DecodeString(req.XMLDTE)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(raw), "dte:GTDocumento"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"resultado":       true,
			"uuid":            "UUID-1",
			"serie":           "A1",
			"numero":          "123",
			"xml_certificado": base64.StdEncoding.EncodeToString([]byte("<certificado/>")),
		})
	}))
	defer srv.Close()

	c := NewHTTPCertifier(HTTPConfig{URL: srv.URL, APIKey: "key", APISecret: "secret", Timeout: time.Second}, nil, nil)
	doc, err := c.Sign(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "UUID-1", doc.UUID)
	assert.Equal(t, "A1", doc.Serie)
	assert.Equal(t, "<certificado/>", doc.SignedDocument)
}

func TestHTTPCertifier_Rechazo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"resultado": false,
			"errores":   []map[string]string{{"codigo": "2.1", "mensaje": "NIT inválido"}},
		})
	}))
	defer srv.Close()

	_, err := NewHTTPCertifier(HTTPConfig{URL: srv.URL}, nil, nil).Sign(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NIT inválido")
}

func TestHTTPCertifier_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPCertifier(HTTPConfig{URL: srv.URL}, nil, nil).Sign(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestLoadCertificate_SinRuta(t *testing.T) {
	cert, err := LoadCertificate("", "", "")
	require.NoError(t, err)
	assert.Nil(t, cert)
}

package fel

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	pkgfel "github.com/jhoicas/Ventas-api/pkg/fel"
	"github.com/ucarion/c14n"
)

var _ pkgfel.Signer = (*XMLDSigSigner)(nil)

// XMLDSigSigner firma enveloped (RSA-SHA256) sobre el nodo DatosEmision y agrega ds:Signature al final de dte:SAT.
type XMLDSigSigner struct{}

// NewXMLDSigSigner crea el firmador.
func NewXMLDSigSigner() *XMLDSigSigner {
	return &XMLDSigSigner{}
}

// Sign implementa pkg/fel.Signer.
func (s *XMLDSigSigner) Sign(xmlBytes []byte, cert tls.Certificate) ([]byte, error) {
	if len(xmlBytes) == 0 {
		return nil, fmt.Errorf("fel: XML vacío")
	}
	if len(cert.Certificate) == 0 {
		return nil, fmt.Errorf("fel: certificado vacío")
	}
	priv, ok := cert.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("fel: el certificado debe incluir llave privada RSA")
	}
	x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return nil, fmt.Errorf("fel: parsear certificado: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("fel: parsear XML: %w", err)
	}
	emision := doc.FindElement("//dte:DatosEmision")
	if emision == nil {
		return nil, fmt.Errorf("fel: no se encontró dte:DatosEmision")
	}
	sat := doc.FindElement("//dte:SAT")

	// 1) Digest del nodo referenciado (C14N)
	sub := etree.NewDocument()
	node := emision.Copy()
	node.CreateAttr("xmlns:dte", NamespaceDTE)
	sub.SetRoot(node)
	raw, err := sub.WriteToBytes()
	if err != nil {
		return nil, err
	}
	canonical, err := canonicalizeXML(raw)
	if err != nil {
		return nil, fmt.Errorf("fel: canonicalizar DatosEmision: %w", err)
	}
	digest := sha256.Sum256(canonical)

	// 2) SignedInfo y firma
	signedInfo := buildSignedInfo(base64.StdEncoding.EncodeToString(digest[:]))
	canonicalSI, err := canonicalizeXML([]byte(signedInfo))
	if err != nil {
		return nil, fmt.Errorf("fel: canonicalizar SignedInfo: %w", err)
	}
	h := sha256.Sum256(canonicalSI)
	sig, err := rsa.SignPKCS1v15(nil, priv, crypto.SHA256, h[:])
	if err != nil {
		return nil, fmt.Errorf("fel: firmar SignedInfo: %w", err)
	}

	// 3) Inyectar ds:Signature
	sigXML := buildSignature(signedInfo, base64.StdEncoding.EncodeToString(sig),
		base64.StdEncoding.EncodeToString(x509Cert.Raw))
	sigDoc := etree.NewDocument()
	if err := sigDoc.ReadFromString(sigXML); err != nil {
		return nil, fmt.Errorf("fel: parsear Signature: %w", err)
	}
	sat.AddChild(sigDoc.Root())

	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func buildSignedInfo(digestB64 string) string {
	var sb strings.Builder
	sb.WriteString(`<ds:SignedInfo xmlns:ds="` + NamespaceDS + `">`)
	sb.WriteString(`<ds:CanonicalizationMethod Algorithm="` + AlgC14N + `"></ds:CanonicalizationMethod>`)
	sb.WriteString(`<ds:SignatureMethod Algorithm="` + AlgRSASHA256 + `"></ds:SignatureMethod>`)
	sb.WriteString(`<ds:Reference URI="#` + DatosEmisionID + `">`)
	sb.WriteString(`<ds:Transforms><ds:Transform Algorithm="` + TransformEnveloped + `"></ds:Transform></ds:Transforms>`)
	sb.WriteString(`<ds:DigestMethod Algorithm="` + AlgSHA256 + `"></ds:DigestMethod>`)
	sb.WriteString(`<ds:DigestValue>` + digestB64 + `</ds:DigestValue>`)
	sb.WriteString(`</ds:Reference></ds:SignedInfo>`)
	return sb.String()
}

func buildSignature(signedInfo, signatureB64, certB64 string) string {
	var sb strings.Builder
	sb.WriteString(`<ds:Signature xmlns:ds="` + NamespaceDS + `" Id="FirmaEmisor">`)
	sb.WriteString(signedInfo)
	sb.WriteString(`<ds:SignatureValue>` + signatureB64 + `</ds:SignatureValue>`)
	sb.WriteString(`<ds:KeyInfo><ds:X509Data><ds:X509Certificate>` + certB64 + `</ds:X509Certificate></ds:X509Data></ds:KeyInfo>`)
	sb.WriteString(`</ds:Signature>`)
	return sb.String()
}

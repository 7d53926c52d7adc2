// Package fel implementa la construcción, firma y certificación de DTE para FEL (SAT Guatemala).
package fel

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/jhoicas/Ventas-api/internal/application/billing"
	pkgfel "github.com/jhoicas/Ventas-api/pkg/fel"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Authorization datos que agrega el certificador al DTE.
type Authorization struct {
	UUID        string
	Serie       string
	Number      string
	CertifiedAt time.Time
}

// DTEBuilder construye el XML GTDocumento a partir del payload de la factura.
type DTEBuilder struct{}

// NewDTEBuilder crea el builder.
func NewDTEBuilder() *DTEBuilder {
	return &DTEBuilder{}
}

// Build genera el DTE sin firma. auth puede ser nil (documento aún no certificado).
func (b *DTEBuilder) Build(p billing.InvoicePayload, auth *Authorization) ([]byte, error) {
	if len(p.Lines) == 0 {
		return nil, fmt.Errorf("fel: el DTE requiere al menos un ítem")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("dte:GTDocumento")
	root.CreateAttr("xmlns:dte", NamespaceDTE)
	root.CreateAttr("xmlns:ds", NamespaceDS)
	root.CreateAttr("Version", DTEVersion)

	sat := root.CreateElement("dte:SAT")
	sat.CreateAttr("ClaseDocumento", "dte")
	dte := sat.CreateElement("dte:DTE")
	dte.CreateAttr("ID", "DatosCertificados")

	emision := dte.CreateElement("dte:DatosEmision")
	emision.CreateAttr("ID", DatosEmisionID)

	generales := emision.CreateElement("dte:DatosGenerales")
	generales.CreateAttr("Tipo", p.DocumentType)
	generales.CreateAttr("FechaHoraEmision", p.IssuedAt.Format("2006-01-02T15:04:05-07:00"))
	generales.CreateAttr("CodigoMoneda", p.Currency)

	emisor := emision.CreateElement("dte:Emisor")
	emisor.CreateAttr("NITEmisor", pkgfel.NormalizeNIT(p.Seller.NIT))
	emisor.CreateAttr("NombreEmisor", nfc(p.Seller.Name))
	emisor.CreateAttr("NombreComercial", nfc(p.Seller.TradeName))
	emisor.CreateAttr("CodigoEstablecimiento", "1")
	emisor.CreateAttr("AfiliacionIVA", "GEN")
	if p.Seller.Email != "" {
		emisor.CreateAttr("CorreoEmisor", p.Seller.Email)
	}
	addDireccion(emisor.CreateElement("dte:DireccionEmisor"), p.Seller)

	receptor := emision.CreateElement("dte:Receptor")
	receptor.CreateAttr("IDReceptor", buyerID(p.Buyer.NIT))
	receptor.CreateAttr("NombreReceptor", nfc(p.Buyer.Name))

	items := emision.CreateElement("dte:Items")
	for _, l := range p.Lines {
		item := items.CreateElement("dte:Item")
		item.CreateAttr("NumeroLinea", strconv.Itoa(l.LineNumber))
		item.CreateAttr("BienOServicio", l.ItemType)
		item.CreateElement("dte:Cantidad").SetText(strconv.Itoa(l.Quantity))
		item.CreateElement("dte:UnidadMedida").SetText(l.Unit)
		item.CreateElement("dte:Descripcion").SetText(nfc(l.Description))
		item.CreateElement("dte:PrecioUnitario").SetText(money(l.UnitPrice))
		item.CreateElement("dte:Precio").SetText(money(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))))
		item.CreateElement("dte:Descuento").SetText(money(l.Discount))
		imp := item.CreateElement("dte:Impuestos").CreateElement("dte:Impuesto")
		imp.CreateElement("dte:NombreCorto").SetText(pkgfel.TaxIVA)
		imp.CreateElement("dte:CodigoUnidadGravable").SetText("1")
		imp.CreateElement("dte:MontoGravable").SetText(money(l.TaxableBase))
		imp.CreateElement("dte:MontoImpuesto").SetText(money(l.TaxAmount))
		item.CreateElement("dte:Total").SetText(money(l.Total))
	}

	totales := emision.CreateElement("dte:Totales")
	totalImp := totales.CreateElement("dte:TotalImpuestos").CreateElement("dte:TotalImpuesto")
	totalImp.CreateAttr("NombreCorto", pkgfel.TaxIVA)
	totalImp.CreateAttr("TotalMontoImpuesto", money(p.Tax))
	totales.CreateElement("dte:GranTotal").SetText(money(p.Total))

	if auth != nil {
		cert := dte.CreateElement("dte:Certificacion")
		cert.CreateElement("dte:NITCertificador").SetText(pkgfel.NormalizeNIT(p.Seller.NIT))
		na := cert.CreateElement("dte:NumeroAutorizacion")
		na.CreateAttr("Serie", auth.Serie)
		na.CreateAttr("Numero", auth.Number)
		na.SetText(auth.UUID)
		cert.CreateElement("dte:FechaHoraCertificacion").SetText(auth.CertifiedAt.Format("2006-01-02T15:04:05-07:00"))
	}

	if len(p.Additional) > 0 {
		adenda := sat.CreateElement("dte:Adenda")
		for _, k := range slices.Sorted(maps.Keys(p.Additional)) {
			dato := adenda.CreateElement("dte:Dato")
			dato.CreateAttr("Nombre", k)
			dato.SetText(nfc(p.Additional[k]))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func addDireccion(el *etree.Element, s billing.Seller) {
	el.CreateElement("dte:Direccion").SetText(nfc(s.Address))
	el.CreateElement("dte:CodigoPostal").SetText(s.PostalCode)
	el.CreateElement("dte:Municipio").SetText(nfc(s.Municipality))
	el.CreateElement("dte:Departamento").SetText(nfc(s.Department))
	el.CreateElement("dte:Pais").SetText(s.Country)
}

func buyerID(nit string) string {
	n := pkgfel.NormalizeNIT(nit)
	if n == "" {
		return pkgfel.ConsumidorFinal
	}
	return n
}

// nfc normaliza a NFC: la SAT rechaza nombres con acentos en forma descompuesta.
func nfc(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

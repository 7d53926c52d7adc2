// Package fel contiene catálogos y validaciones de la Factura Electrónica en Línea (SAT Guatemala).
package fel

// Tipos de documento tributario electrónico (DTE).
const (
	DocumentFACT = "FACT" // Factura
	DocumentFCAM = "FCAM" // Factura cambiaria
	DocumentFPEQ = "FPEQ" // Factura pequeño contribuyente
	DocumentNCRE = "NCRE" // Nota de crédito
	DocumentNDEB = "NDEB" // Nota de débito
)

// DocumentTypes descripción de cada tipo de DTE soportado.
var DocumentTypes = map[string]string{
	DocumentFACT: "Factura",
	DocumentFCAM: "Factura Cambiaria",
	DocumentFPEQ: "Factura Pequeño Contribuyente",
	DocumentNCRE: "Nota de Crédito",
	DocumentNDEB: "Nota de Débito",
}

// Moneda y país por defecto.
const (
	CurrencyGTQ = "GTQ"
	CountryGT   = "GT"
)

// Tipo de ítem: bien o servicio.
const (
	ItemGood    = "B"
	ItemService = "S"
)

// UnitDefault unidad de medida por defecto de las líneas.
const UnitDefault = "UND"

// TaxIVA nombre corto del impuesto al valor agregado.
const TaxIVA = "IVA"

// IsValidDocumentType indica si el tipo de DTE está en el catálogo.
func IsValidDocumentType(t string) bool {
	_, ok := DocumentTypes[t]
	return ok
}

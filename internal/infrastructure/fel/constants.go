package fel

// Namespaces del DTE FEL (SAT Guatemala) y XMLDSig.
const (
	NamespaceDTE = "http://www.sat.gob.gt/dte/fel/0.2.0"
	NamespaceDS  = "http://www.w3.org/2000/09/xmldsig#"
	DTEVersion   = "0.1"
)

// Algoritmos de la firma enveloped.
const (
	AlgC14N            = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgRSASHA256       = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"
	AlgSHA256          = "http://www.w3.org/2001/04/xmlenc#sha256"
	TransformEnveloped = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"
)

// DatosEmisionID Id del nodo firmado; la Reference apunta a "#DatosEmision".
const DatosEmisionID = "DatosEmision"

// SerieSimulated serie que asigna el certificador simulado.
const SerieSimulated = "FACT"

package fel

import "crypto/tls"

// Signer firma un DTE y devuelve el XML con el nodo ds:Signature inyectado.
type Signer interface {
	Sign(xmlBytes []byte, cert tls.Certificate) ([]byte, error)
}

package fel

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/pkcs12"
)

// LoadCertificate carga el certificado de firma. .p12/.pfx se decodifica con password;
// cualquier otra extensión se trata como PEM (keyPath vacío = cert y llave en el mismo archivo).
// Si certPath está vacío devuelve (nil, nil): el DTE se emite sin firma.
func LoadCertificate(certPath, keyPath, password string) (*tls.Certificate, error) {
	if certPath == "" {
		return nil, nil
	}
	switch strings.ToLower(filepath.Ext(certPath)) {
	case ".p12", ".pfx":
		cert, err := loadFromP12(certPath, password)
		if err != nil {
			return nil, err
		}
		return &cert, nil
	}
	if keyPath == "" {
		keyPath = certPath
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("cargar PEM: %w", err)
	}
	return &cert, nil
}

func loadFromP12(path, password string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("leer p12: %w", err)
	}
	priv, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("decodificar p12: %w", err)
	}
	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  priv,
		Leaf:        cert,
	}, nil
}

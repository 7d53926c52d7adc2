package entity

import "time"

// StockBatch lote de un producto. Se crea en la primera entrada de (producto, número de lote)
// y nunca se elimina; QuantityAvailable cambia por consumo, reversión y ajuste.
type StockBatch struct {
	ID                string
	ProductID         string
	BatchNumber       string
	ExpirationDate    *time.Time // nil = sin vencimiento, se consume al final
	QuantityInitial   int
	QuantityAvailable int
	Location          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FIFOLess orden de consumo: vencimiento ascendente (sin fecha al final), luego antigüedad.
func FIFOLess(a, b StockBatch) bool {
	switch {
	case a.ExpirationDate != nil && b.ExpirationDate == nil:
		return true
	case a.ExpirationDate == nil && b.ExpirationDate != nil:
		return false
	case a.ExpirationDate != nil && b.ExpirationDate != nil && !a.ExpirationDate.Equal(*b.ExpirationDate):
		return a.ExpirationDate.Before(*b.ExpirationDate)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

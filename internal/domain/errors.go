package domain

import (
	"errors"
	"fmt"
)

// Tipos de error de dominio (sin dependencias externas).
// Los errores específicos envuelven uno de estos para que errors.Is permita clasificarlos.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCashBoxClosed      = errors.New("la caja está cerrada")
	ErrCashBoxAlreadyOpen = errors.New("ya existe una caja abierta")
	ErrExternalService    = errors.New("fallo del servicio externo")
	ErrInvariant          = errors.New("violación de invariante interna")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// KindError error con mensaje propio que se clasifica por su Kind.
type KindError struct {
	Kind error
	Msg  string
}

func (e *KindError) Error() string { return e.Msg }

// Unwrap devuelve el tipo de error para errors.Is.
func (e *KindError) Unwrap() error { return e.Kind }

// NewError construye un KindError.
func NewError(kind error, msg string) *KindError {
	return &KindError{Kind: kind, Msg: msg}
}

// Errorf construye un KindError con formato.
func Errorf(kind error, format string, args ...any) *KindError {
	return &KindError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Errores específicos.
var (
	ErrInactiveProduct         = NewError(ErrInvalidInput, "el producto no está activo")
	ErrInvalidQuantity         = NewError(ErrInvalidInput, "la cantidad debe ser mayor a cero")
	ErrInvalidAmount           = NewError(ErrInvalidInput, "el monto debe ser mayor a cero")
	ErrNegativeAmount          = NewError(ErrInvalidInput, "el monto no puede ser negativo")
	ErrPresentationMismatch    = NewError(ErrInvalidInput, "la presentación no pertenece al producto")
	ErrBatchMismatch           = NewError(ErrInvalidInput, "el lote no pertenece al producto")
	ErrReasonRequired          = NewError(ErrInvalidInput, "el motivo de anulación es obligatorio")
	ErrNothingToRevert         = NewError(ErrInvariant, "no se encontraron movimientos para revertir")
	ErrAlreadyReverted         = NewError(ErrConflict, "los movimientos de esta referencia ya fueron revertidos")
	ErrSaleNotPending          = NewError(ErrConflict, "solo se pueden modificar ventas pendientes")
	ErrEmptySale               = NewError(ErrConflict, "la venta no tiene items")
	ErrCannotCancelInvoiced    = NewError(ErrConflict, "la venta tiene documento fiscal; debe anularse")
	ErrAlreadyAnnulled         = NewError(ErrConflict, "la venta ya está anulada")
	ErrMustBeCompletedFirst    = NewError(ErrConflict, "solo se pueden anular ventas completadas")
	ErrNoFiscalDocument        = NewError(ErrConflict, "la venta no tiene documento fiscal")
	ErrAlreadyHasAnnulment     = NewError(ErrConflict, "el documento fiscal ya tiene una anulación")
	ErrNotAuthorized           = NewError(ErrConflict, "el documento fiscal no está autorizado")
	ErrAlreadyHasDocument      = NewError(ErrConflict, "la venta ya tiene documento fiscal")
	ErrDocumentAlreadyAnnulled = NewError(ErrConflict, "el documento fiscal ya está anulado")
	ErrDocumentAlreadyRejected = NewError(ErrConflict, "el documento fiscal ya está rechazado")
	ErrCashBoxNotOpen          = NewError(ErrCashBoxClosed, "no hay una caja abierta")
	ErrCashBoxAlreadyClosed    = NewError(ErrCashBoxClosed, "la caja ya está cerrada")
)

// InsufficientStockError detalle de stock insuficiente por producto.
type InsufficientStockError struct {
	ProductID string
	Required  int
	Available int
}

func (e *InsufficientStockError) Error() string {
	if e.Available == 0 {
		return fmt.Sprintf("Sin existencias del producto %s (requerido: %d)", e.ProductID, e.Required)
	}
	return fmt.Sprintf("stock insuficiente del producto %s: requerido %d, disponible %d", e.ProductID, e.Required, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

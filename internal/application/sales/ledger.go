package sales

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Ledger ventas y su máquina de estados: pending -> completed -> annulled, pending -> annulled.
// Confirmar consume stock (FIFO) y registra el ingreso en caja en una sola transacción.
type Ledger struct {
	txRunner ports.TxRunner
	stock    *inventory.StockLedger
	cash     *cashbox.Ledger
	clock    ports.Clock
	taxRate  decimal.Decimal
}

// NewLedger construye el libro de ventas con la tasa de impuesto indicada (p. ej. entity.DefaultTaxRate).
func NewLedger(txRunner ports.TxRunner, stock *inventory.StockLedger, cash *cashbox.Ledger, clock ports.Clock, taxRate decimal.Decimal) *Ledger {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Ledger{txRunner: txRunner, stock: stock, cash: cash, clock: clock, taxRate: taxRate}
}

// CreateSaleInput datos de una venta nueva. CashierID vacío = UserID.
type CreateSaleInput struct {
	UserID       string
	CashierID    string
	CustomerName string
	CustomerNIT  string
	Notes        string
}

// AddItemInput línea a agregar; Quantity en presentaciones.
type AddItemInput struct {
	ProductID      string
	PresentationID string
	Quantity       int
}

// Summary venta con items y estado fiscal.
type Summary struct {
	Sale         *entity.Sale
	Items        []*entity.SaleItem
	ItemsCount   int
	TotalUnits   int
	FiscalStatus string
	FiscalUUID   string
}

// CreateSale crea una venta pendiente con totales en cero.
func (l *Ledger) CreateSale(ctx context.Context, in CreateSaleInput) (*entity.Sale, error) {
	if in.UserID == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "usuario requerido")
	}
	if in.CashierID == "" {
		in.CashierID = in.UserID
	}
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = entity.DefaultCustomerName
	}
	nit := strings.ToUpper(strings.TrimSpace(in.CustomerNIT))
	if nit == "" {
		nit = entity.DefaultCustomerNIT
	}
	now := l.clock.Now()
	sale := &entity.Sale{
		ID:           uuid.New().String(),
		UserID:       in.UserID,
		CashierID:    in.CashierID,
		CustomerName: name,
		CustomerNIT:  nit,
		Status:       entity.SaleStatusPending,
		Subtotal:     decimal.Zero,
		Tax:          decimal.Zero,
		Total:        decimal.Zero,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		return r.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// AddItem agrega una línea a una venta pendiente. Verifica stock en unidades base antes de
// crear la línea, sin consumirlo.
func (l *Ledger) AddItem(ctx context.Context, saleID string, in AddItemInput) (*entity.SaleItem, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	var item *entity.SaleItem
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := l.pendingSale(ctx, r, saleID)
		if err != nil {
			return err
		}
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.Active {
			return domain.ErrInactiveProduct
		}
		pres, err := r.Products.GetPresentation(ctx, in.PresentationID)
		if err != nil {
			return err
		}
		if pres == nil {
			return domain.ErrNotFound
		}
		if pres.ProductID != product.ID {
			return domain.ErrPresentationMismatch
		}
		if err := checkStock(ctx, r, product.ID, pres.BaseUnits(in.Quantity)); err != nil {
			return err
		}
		now := l.clock.Now()
		item = &entity.SaleItem{
			ID:               uuid.New().String(),
			SaleID:           sale.ID,
			ProductID:        product.ID,
			PresentationID:   pres.ID,
			ProductName:      product.Name,
			PresentationName: pres.Name,
			Factor:           pres.Factor,
			Quantity:         in.Quantity,
			UnitPrice:        pres.Price,
			Total:            entity.LineTotal(in.Quantity, pres.Price),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := r.Sales.AddItem(ctx, item); err != nil {
			return err
		}
		return l.recalculateTotals(ctx, r, sale)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity cambia la cantidad de una línea de una venta pendiente.
func (l *Ledger) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*entity.SaleItem, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	var item *entity.SaleItem
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		item, err = r.Sales.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		sale, err := l.pendingSale(ctx, r, item.SaleID)
		if err != nil {
			return err
		}
		if err := checkStock(ctx, r, item.ProductID, quantity*item.Factor); err != nil {
			return err
		}
		item.Quantity = quantity
		item.Total = entity.LineTotal(quantity, item.UnitPrice)
		item.UpdatedAt = l.clock.Now()
		if err := r.Sales.UpdateItem(ctx, item); err != nil {
			return err
		}
		return l.recalculateTotals(ctx, r, sale)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem elimina una línea de una venta pendiente.
func (l *Ledger) RemoveItem(ctx context.Context, itemID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		item, err := r.Sales.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		sale, err = l.pendingSale(ctx, r, item.SaleID)
		if err != nil {
			return err
		}
		if err := r.Sales.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		return l.recalculateTotals(ctx, r, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ConfirmSale consume el stock de cada item, marca la venta completada y registra el ingreso
// en la caja abierta. Todo o nada: si un item no tiene stock ningún lote se toca.
func (l *Ledger) ConfirmSale(ctx context.Context, saleID, userID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		sale, err = l.pendingSale(ctx, r, saleID)
		if err != nil {
			return err
		}
		items, err := r.Sales.ListItems(ctx, sale.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptySale
		}
		box, err := l.cash.RequireOpenBoxInTx(ctx, r)
		if err != nil {
			return err
		}
		ref := inventory.Reference{Type: entity.ReferenceSale, ID: sale.ID}
		for _, it := range items {
			if _, err := l.stock.ConsumeFIFOInTx(ctx, r, it.ProductID, it.BaseUnits(), ref, userID); err != nil {
				return err
			}
		}
		now := l.clock.Now()
		sale.Status = entity.SaleStatusCompleted
		sale.CompletedAt = &now
		sale.UpdatedAt = now
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}
		if !sale.Total.IsPositive() {
			return nil
		}
		_, err = l.cash.RegisterInTx(ctx, r, entity.CashMovementIncome, cashbox.MovementInput{
			CashBoxID:   box.ID,
			Amount:      sale.Total,
			Description: "Venta #" + sale.ID,
			UserID:      userID,
			SaleID:      sale.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// CancelSale anula una venta sin documento fiscal. Si estaba completada devuelve el stock
// y, con una caja abierta, registra la reversión del ingreso.
func (l *Ledger) CancelSale(ctx context.Context, saleID, userID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		sale, err = r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusAnnulled {
			return domain.ErrAlreadyAnnulled
		}
		doc, err := r.FiscalDocuments.GetBySaleID(ctx, sale.ID)
		if err != nil {
			return err
		}
		if doc != nil {
			return domain.ErrCannotCancelInvoiced
		}
		wasCompleted := sale.Status == entity.SaleStatusCompleted
		if wasCompleted {
			ref := inventory.Reference{Type: entity.ReferenceSale, ID: sale.ID}
			if _, err := l.stock.RevertByReferenceInTx(ctx, r, ref, entity.ReferenceCancellation, userID); err != nil {
				return err
			}
		}
		if err := l.MarkAnnulledInTx(ctx, r, sale); err != nil {
			return err
		}
		if !wasCompleted || !sale.Total.IsPositive() {
			return nil
		}
		box, err := r.CashBoxes.FindOpen(ctx, true)
		if err != nil || box == nil {
			return err
		}
		_, err = l.cash.RegisterInTx(ctx, r, entity.CashMovementReversal, cashbox.MovementInput{
			CashBoxID:   box.ID,
			Amount:      sale.Total,
			Description: "Cancelación de venta #" + sale.ID,
			UserID:      userID,
			SaleID:      sale.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// MarkAnnulledInTx pasa la venta a annulled dentro de la transacción del caller.
func (l *Ledger) MarkAnnulledInTx(ctx context.Context, r ports.Repos, sale *entity.Sale) error {
	if sale.Status == entity.SaleStatusAnnulled {
		return domain.ErrAlreadyAnnulled
	}
	now := l.clock.Now()
	sale.Status = entity.SaleStatusAnnulled
	sale.AnnulledAt = &now
	sale.UpdatedAt = now
	return r.Sales.Update(ctx, sale)
}

// GetSale obtiene una venta; ErrNotFound si no existe.
func (l *Ledger) GetSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		sale, err = r.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	return sale, err
}

// Summary venta con items, unidades y estado fiscal.
func (l *Ledger) Summary(ctx context.Context, saleID string) (*Summary, error) {
	var s *Summary
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := r.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		items, err := r.Sales.ListItems(ctx, saleID)
		if err != nil {
			return err
		}
		s = &Summary{Sale: sale, Items: items, ItemsCount: len(items)}
		for _, it := range items {
			s.TotalUnits += it.Quantity
		}
		doc, err := r.FiscalDocuments.GetBySaleID(ctx, saleID)
		if err != nil {
			return err
		}
		if doc != nil {
			s.FiscalStatus = doc.Status
			s.FiscalUUID = doc.UUID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List ventas con filtros.
func (l *Ledger) List(ctx context.Context, f entity.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := l.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		out, err = r.Sales.List(ctx, f)
		return err
	})
	return out, err
}

// Pending ventas pendientes, opcionalmente de un usuario.
func (l *Ledger) Pending(ctx context.Context, userID string) ([]*entity.Sale, error) {
	return l.List(ctx, entity.SaleFilter{Status: entity.SaleStatusPending, UserID: userID})
}

func (l *Ledger) pendingSale(ctx context.Context, r ports.Repos, saleID string) (*entity.Sale, error) {
	sale, err := r.Sales.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !sale.IsPending() {
		return nil, domain.ErrSaleNotPending
	}
	return sale, nil
}

// recalculateTotals recalcula subtotal, impuesto y total desde los items persistidos.
func (l *Ledger) recalculateTotals(ctx context.Context, r ports.Repos, sale *entity.Sale) error {
	items, err := r.Sales.ListItems(ctx, sale.ID)
	if err != nil {
		return err
	}
	sale.Subtotal, sale.Tax, sale.Total = entity.RecalculateTotals(items, l.taxRate)
	sale.UpdatedAt = l.clock.Now()
	return r.Sales.Update(ctx, sale)
}

func checkStock(ctx context.Context, r ports.Repos, productID string, required int) error {
	available, err := r.Batches.SumAvailable(ctx, productID)
	if err != nil {
		return err
	}
	if available < required {
		return &domain.InsufficientStockError{ProductID: productID, Required: required, Available: available}
	}
	return nil
}

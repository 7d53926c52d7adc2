package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository        = (*productRepo)(nil)
	_ repository.StockBatchRepository     = (*batchRepo)(nil)
	_ repository.StockMovementRepository  = (*movementRepo)(nil)
	_ repository.SaleRepository           = (*saleRepo)(nil)
	_ repository.CashBoxRepository        = (*cashBoxRepo)(nil)
	_ repository.FiscalDocumentRepository = (*fiscalDocumentRepo)(nil)
	_ repository.AnnulmentRepository      = (*annulmentRepo)(nil)
)

// collect devuelve copias de las filas que cumplen keep, en orden de inserción.
func collect[T any](m map[string]row[T], keep func(T) bool) []*T {
	rows := make([]row[T], 0, len(m))
	for _, r := range m {
		if keep == nil || keep(r.v) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]*T, 0, len(rows))
	for i := range rows {
		v := rows[i].v
		out = append(out, &v)
	}
	return out
}

func get[T any](m map[string]row[T], id string) *T {
	r, ok := m[id]
	if !ok {
		return nil
	}
	v := r.v
	return &v
}

func put[T any](s *state, m map[string]row[T], id string, v T) {
	if r, ok := m[id]; ok {
		m[id] = row[T]{v: v, seq: r.seq}
		return
	}
	m[id] = row[T]{v: v, seq: s.next()}
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct{ s *state }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; ok {
		return domain.NewError(domain.ErrConflict, "producto duplicado")
	}
	for _, existing := range r.s.products {
		if p.SKU != "" && existing.v.SKU == p.SKU {
			return domain.Errorf(domain.ErrConflict, "el SKU %s ya existe", p.SKU)
		}
	}
	put(r.s, r.s.products, p.ID, *p)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return get(r.s.products, id), nil
}

func (r *productRepo) List(_ context.Context, activeOnly bool) ([]*entity.Product, error) {
	return collect(r.s.products, func(p entity.Product) bool { return !activeOnly || p.Active }), nil
}

func (r *productRepo) SetActive(_ context.Context, id string, active bool) error {
	p := get(r.s.products, id)
	if p == nil {
		return domain.ErrNotFound
	}
	p.Active = active
	put(r.s, r.s.products, id, *p)
	return nil
}

func (r *productRepo) CreatePresentation(_ context.Context, p *entity.Presentation) error {
	if _, ok := r.s.products[p.ProductID]; !ok {
		return domain.ErrNotFound
	}
	put(r.s, r.s.presentations, p.ID, *p)
	return nil
}

func (r *productRepo) GetPresentation(_ context.Context, id string) (*entity.Presentation, error) {
	return get(r.s.presentations, id), nil
}

func (r *productRepo) ListPresentations(_ context.Context, productID string) ([]*entity.Presentation, error) {
	return collect(r.s.presentations, func(p entity.Presentation) bool { return p.ProductID == productID }), nil
}

// ── Lotes ────────────────────────────────────────────────────────────────────

type batchRepo struct{ s *state }

func (r *batchRepo) Create(_ context.Context, b *entity.StockBatch) error {
	for _, existing := range r.s.batches {
		if existing.v.ProductID == b.ProductID && existing.v.BatchNumber == b.BatchNumber {
			return domain.Errorf(domain.ErrConflict, "el lote %s ya existe", b.BatchNumber)
		}
	}
	put(r.s, r.s.batches, b.ID, *b)
	return nil
}

func (r *batchRepo) GetByID(_ context.Context, id string) (*entity.StockBatch, error) {
	return get(r.s.batches, id), nil
}

func (r *batchRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *batchRepo) GetByNumberForUpdate(_ context.Context, productID, batchNumber string) (*entity.StockBatch, error) {
	found := collect(r.s.batches, func(b entity.StockBatch) bool {
		return b.ProductID == productID && b.BatchNumber == batchNumber
	})
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *batchRepo) ListAvailableFIFO(_ context.Context, productID string, _ bool) ([]*entity.StockBatch, error) {
	batches := collect(r.s.batches, func(b entity.StockBatch) bool {
		return b.ProductID == productID && b.QuantityAvailable > 0
	})
	sort.SliceStable(batches, func(i, j int) bool { return entity.FIFOLess(*batches[i], *batches[j]) })
	return batches, nil
}

func (r *batchRepo) UpdateAvailable(_ context.Context, id string, available int, updatedAt time.Time) error {
	b := get(r.s.batches, id)
	if b == nil {
		return domain.ErrNotFound
	}
	b.QuantityAvailable = available
	b.UpdatedAt = updatedAt
	put(r.s, r.s.batches, id, *b)
	return nil
}

func (r *batchRepo) Increment(_ context.Context, id string, quantity int, updatedAt time.Time) error {
	b := get(r.s.batches, id)
	if b == nil {
		return domain.ErrNotFound
	}
	b.QuantityAvailable += quantity
	b.UpdatedAt = updatedAt
	put(r.s, r.s.batches, id, *b)
	return nil
}

func (r *batchRepo) SumAvailable(_ context.Context, productID string) (int, error) {
	total := 0
	for _, b := range r.s.batches {
		if b.v.ProductID == productID {
			total += b.v.QuantityAvailable
		}
	}
	return total, nil
}

// ── Movimientos de stock ─────────────────────────────────────────────────────

type movementRepo struct{ s *state }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) ListByReference(_ context.Context, referenceType, referenceID, movementType string) ([]*entity.StockMovement, error) {
	return r.filter(func(m entity.StockMovement) bool {
		return m.ReferenceType == referenceType && m.ReferenceID == referenceID && m.Type == movementType
	}), nil
}

func (r *movementRepo) ListUnreverted(_ context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error) {
	reverted := make(map[string]bool)
	for _, m := range r.s.movements {
		if m.Type == entity.MovementTypeReversal && m.RevertsMovementID != "" {
			reverted[m.RevertsMovementID] = true
		}
	}
	return r.filter(func(m entity.StockMovement) bool {
		return m.Type == entity.MovementTypeOut && m.ReferenceType == referenceType &&
			m.ReferenceID == referenceID && !reverted[m.ID]
	}), nil
}

func (r *movementRepo) List(_ context.Context, f entity.MovementFilter) ([]*entity.StockMovement, error) {
	return r.filter(func(m entity.StockMovement) bool {
		return (f.ProductID == "" || m.ProductID == f.ProductID) &&
			(f.BatchID == "" || m.BatchID == f.BatchID) &&
			(f.Type == "" || m.Type == f.Type) &&
			(f.ReferenceType == "" || m.ReferenceType == f.ReferenceType) &&
			(f.ReferenceID == "" || m.ReferenceID == f.ReferenceID)
	}), nil
}

func (r *movementRepo) filter(keep func(entity.StockMovement) bool) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if keep(m) {
			m := m
			out = append(out, &m)
		}
	}
	return out
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type saleRepo struct{ s *state }

func (r *saleRepo) Create(_ context.Context, s *entity.Sale) error {
	put(r.s, r.s.sales, s.ID, *s)
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	return get(r.s.sales, id), nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) Update(_ context.Context, s *entity.Sale) error {
	if _, ok := r.s.sales[s.ID]; !ok {
		return domain.ErrNotFound
	}
	put(r.s, r.s.sales, s.ID, *s)
	return nil
}

func (r *saleRepo) List(_ context.Context, f entity.SaleFilter) ([]*entity.Sale, error) {
	return collect(r.s.sales, func(s entity.Sale) bool {
		return (f.Status == "" || s.Status == f.Status) &&
			(f.UserID == "" || s.UserID == f.UserID) &&
			inRange(s.CreatedAt, f.From, f.To)
	}), nil
}

func (r *saleRepo) AddItem(_ context.Context, it *entity.SaleItem) error {
	if _, ok := r.s.sales[it.SaleID]; !ok {
		return domain.ErrNotFound
	}
	put(r.s, r.s.items, it.ID, *it)
	return nil
}

func (r *saleRepo) GetItem(_ context.Context, id string) (*entity.SaleItem, error) {
	return get(r.s.items, id), nil
}

func (r *saleRepo) UpdateItem(_ context.Context, it *entity.SaleItem) error {
	if _, ok := r.s.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	put(r.s, r.s.items, it.ID, *it)
	return nil
}

func (r *saleRepo) DeleteItem(_ context.Context, id string) error {
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *saleRepo) ListItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	return collect(r.s.items, func(it entity.SaleItem) bool { return it.SaleID == saleID }), nil
}

// ── Caja ─────────────────────────────────────────────────────────────────────

type cashBoxRepo struct{ s *state }

func (r *cashBoxRepo) Create(_ context.Context, b *entity.CashBox) error {
	for _, existing := range r.s.boxes {
		if existing.v.IsOpen() && b.IsOpen() {
			return domain.Errorf(domain.ErrCashBoxAlreadyOpen, "Ya existe una caja abierta (#%s)", existing.v.ID)
		}
	}
	put(r.s, r.s.boxes, b.ID, *b)
	return nil
}

func (r *cashBoxRepo) GetByID(_ context.Context, id string) (*entity.CashBox, error) {
	return get(r.s.boxes, id), nil
}

func (r *cashBoxRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashBox, error) {
	return r.GetByID(ctx, id)
}

func (r *cashBoxRepo) FindOpen(_ context.Context, _ bool) (*entity.CashBox, error) {
	open := collect(r.s.boxes, func(b entity.CashBox) bool { return b.IsOpen() })
	if len(open) == 0 {
		return nil, nil
	}
	sort.SliceStable(open, func(i, j int) bool { return open[i].OpenedAt.After(open[j].OpenedAt) })
	return open[0], nil
}

func (r *cashBoxRepo) Close(_ context.Context, b *entity.CashBox) error {
	if _, ok := r.s.boxes[b.ID]; !ok {
		return domain.ErrNotFound
	}
	put(r.s, r.s.boxes, b.ID, *b)
	return nil
}

func (r *cashBoxRepo) List(_ context.Context, f entity.CashBoxFilter) ([]*entity.CashBox, error) {
	boxes := collect(r.s.boxes, func(b entity.CashBox) bool {
		switch f.Status {
		case "open":
			if !b.IsOpen() {
				return false
			}
		case "closed":
			if b.IsOpen() {
				return false
			}
		}
		return (f.OpenedBy == "" || b.OpenedBy == f.OpenedBy) && inRange(b.OpenedAt, f.From, f.To)
	})
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].OpenedAt.After(boxes[j].OpenedAt) })
	return boxes, nil
}

func (r *cashBoxRepo) CreateMovement(_ context.Context, m *entity.CashMovement) error {
	if _, ok := r.s.boxes[m.CashBoxID]; !ok {
		return domain.ErrNotFound
	}
	r.s.cashMovements = append(r.s.cashMovements, *m)
	return nil
}

func (r *cashBoxRepo) ListMovements(_ context.Context, cashBoxID string, f entity.CashMovementFilter) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	for _, m := range r.s.cashMovements {
		if m.CashBoxID != cashBoxID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.UserID != "" && m.UserID != f.UserID {
			continue
		}
		if f.HasSale != nil && (m.SaleID != "") != *f.HasSale {
			continue
		}
		m := m
		out = append(out, &m)
	}
	return out, nil
}

func (r *cashBoxRepo) Totals(_ context.Context, cashBoxID string) (entity.CashTotals, error) {
	var t entity.CashTotals
	for _, m := range r.s.cashMovements {
		if m.CashBoxID == cashBoxID {
			t.Add(m)
		}
	}
	return t, nil
}

func (r *cashBoxRepo) TotalsBetween(_ context.Context, from, to time.Time) (entity.CashTotals, int, error) {
	boxes := make(map[string]bool)
	for id, b := range r.s.boxes {
		if inRange(b.v.OpenedAt, &from, &to) {
			boxes[id] = true
		}
	}
	var t entity.CashTotals
	for _, m := range r.s.cashMovements {
		if boxes[m.CashBoxID] {
			t.Add(m)
		}
	}
	return t, len(boxes), nil
}

// ── Documentos fiscales y anulaciones ────────────────────────────────────────

type fiscalDocumentRepo struct{ s *state }

func (r *fiscalDocumentRepo) Create(_ context.Context, d *entity.FiscalDocument) error {
	for _, existing := range r.s.docs {
		if existing.v.SaleID == d.SaleID {
			return domain.ErrAlreadyHasDocument
		}
		if existing.v.UUID == d.UUID {
			return domain.Errorf(domain.ErrConflict, "UUID fiscal duplicado: %s", d.UUID)
		}
	}
	put(r.s, r.s.docs, d.ID, *d)
	return nil
}

func (r *fiscalDocumentRepo) GetByID(_ context.Context, id string) (*entity.FiscalDocument, error) {
	return get(r.s.docs, id), nil
}

func (r *fiscalDocumentRepo) GetBySaleID(_ context.Context, saleID string) (*entity.FiscalDocument, error) {
	found := collect(r.s.docs, func(d entity.FiscalDocument) bool { return d.SaleID == saleID })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *fiscalDocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	return r.GetByID(ctx, id)
}

func (r *fiscalDocumentRepo) UpdateStatus(_ context.Context, d *entity.FiscalDocument) error {
	if _, ok := r.s.docs[d.ID]; !ok {
		return domain.ErrNotFound
	}
	put(r.s, r.s.docs, d.ID, *d)
	return nil
}

func (r *fiscalDocumentRepo) List(_ context.Context, f entity.FiscalDocumentFilter) ([]*entity.FiscalDocument, error) {
	return collect(r.s.docs, func(d entity.FiscalDocument) bool {
		return (f.Status == "" || d.Status == f.Status) && inRange(d.CreatedAt, f.From, f.To)
	}), nil
}

func (r *fiscalDocumentRepo) CountByStatus(_ context.Context, from, to *time.Time) (map[string]int, error) {
	counts := make(map[string]int)
	for _, d := range r.s.docs {
		if inRange(d.v.CreatedAt, from, to) {
			counts[d.v.Status]++
		}
	}
	return counts, nil
}

type annulmentRepo struct{ s *state }

func (r *annulmentRepo) Create(_ context.Context, a *entity.Annulment) error {
	for _, existing := range r.s.annulments {
		if existing.v.FiscalDocumentID == a.FiscalDocumentID {
			return domain.ErrAlreadyHasAnnulment
		}
	}
	put(r.s, r.s.annulments, a.ID, *a)
	return nil
}

func (r *annulmentRepo) GetByID(_ context.Context, id string) (*entity.Annulment, error) {
	return get(r.s.annulments, id), nil
}

func (r *annulmentRepo) GetByFiscalDocumentID(_ context.Context, fiscalDocumentID string) (*entity.Annulment, error) {
	found := collect(r.s.annulments, func(a entity.Annulment) bool { return a.FiscalDocumentID == fiscalDocumentID })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *annulmentRepo) UpdateStatus(_ context.Context, a *entity.Annulment) error {
	if _, ok := r.s.annulments[a.ID]; !ok {
		return domain.ErrNotFound
	}
	put(r.s, r.s.annulments, a.ID, *a)
	return nil
}

func (r *annulmentRepo) List(_ context.Context, f entity.AnnulmentFilter) ([]*entity.Annulment, error) {
	return collect(r.s.annulments, func(a entity.Annulment) bool {
		return (f.Status == "" || a.Status == f.Status) && (f.UserID == "" || a.UserID == f.UserID) &&
			inRange(a.CreatedAt, f.From, f.To)
	}), nil
}

func (r *annulmentRepo) CountByStatus(_ context.Context, from, to *time.Time) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range r.s.annulments {
		if inRange(a.v.CreatedAt, from, to) {
			counts[a.v.Status]++
		}
	}
	return counts, nil
}

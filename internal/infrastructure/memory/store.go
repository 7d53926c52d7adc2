// Package memory implementa los repositorios en memoria (desarrollo y tests).
// Cada transacción trabaja sobre una copia del estado que solo se publica en el Commit.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type row[T any] struct {
	v   T
	seq int64
}

type state struct {
	seq           int64
	products      map[string]row[entity.Product]
	presentations map[string]row[entity.Presentation]
	batches       map[string]row[entity.StockBatch]
	movements     []entity.StockMovement
	sales         map[string]row[entity.Sale]
	items         map[string]row[entity.SaleItem]
	boxes         map[string]row[entity.CashBox]
	cashMovements []entity.CashMovement
	docs          map[string]row[entity.FiscalDocument]
	annulments    map[string]row[entity.Annulment]
	users         map[string]row[entity.User]
}

func newState() *state {
	return &state{
		products:      make(map[string]row[entity.Product]),
		presentations: make(map[string]row[entity.Presentation]),
		batches:       make(map[string]row[entity.StockBatch]),
		sales:         make(map[string]row[entity.Sale]),
		items:         make(map[string]row[entity.SaleItem]),
		boxes:         make(map[string]row[entity.CashBox]),
		docs:          make(map[string]row[entity.FiscalDocument]),
		annulments:    make(map[string]row[entity.Annulment]),
		users:         make(map[string]row[entity.User]),
	}
}

func (s *state) clone() *state {
	return &state{
		seq:           s.seq,
		products:      maps.Clone(s.products),
		presentations: maps.Clone(s.presentations),
		batches:       maps.Clone(s.batches),
		movements:     slices.Clone(s.movements),
		sales:         maps.Clone(s.sales),
		items:         maps.Clone(s.items),
		boxes:         maps.Clone(s.boxes),
		cashMovements: slices.Clone(s.cashMovements),
		docs:          maps.Clone(s.docs),
		annulments:    maps.Clone(s.annulments),
		users:         maps.Clone(s.users),
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

func (s *state) repos() ports.Repos {
	return ports.Repos{
		Products:        &productRepo{s},
		Batches:         &batchRepo{s},
		Movements:       &movementRepo{s},
		Sales:           &saleRepo{s},
		CashBoxes:       &cashBoxRepo{s},
		FiscalDocuments: &fiscalDocumentRepo{s},
		Annulments:      &annulmentRepo{s},
	}
}

// Store almacén en memoria. Las transacciones se serializan con un único lock,
// lo que equivale a aislamiento serializable.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado; si fn devuelve nil la copia reemplaza al estado.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(work.repos()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo {
	return &UserRepo{store: s}
}

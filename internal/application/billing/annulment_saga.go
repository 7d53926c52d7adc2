package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// AnnulmentSaga anula una venta facturada coordinando stock, documento fiscal, venta y caja.
//
// Límites transaccionales:
//  1. Validación y creación de la anulación (pending) se confirman en su propia transacción;
//     la fila bloquea cualquier otra anulación del mismo documento.
//  2. Reversión de stock, anulación del documento, anulación de la venta, reversión en caja y
//     aprobación corren en UNA transacción: o se aplican todas o ninguna.
//  3. Si el paso 2 falla, la anulación pasa a rejected en otra transacción y se devuelve el error.
type AnnulmentSaga struct {
	txRunner ports.TxRunner
	stock    *inventory.StockLedger
	fiscal   *FiscalLedger
	sales    *sales.Ledger
	cash     *cashbox.Ledger
	clock    ports.Clock
	log      *logger.Logger
}

// NewAnnulmentSaga construye la saga.
func NewAnnulmentSaga(
	txRunner ports.TxRunner,
	stock *inventory.StockLedger,
	fiscal *FiscalLedger,
	sales *sales.Ledger,
	cash *cashbox.Ledger,
	clock ports.Clock,
	log *logger.Logger,
) *AnnulmentSaga {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AnnulmentSaga{txRunner: txRunner, stock: stock, fiscal: fiscal, sales: sales, cash: cash, clock: clock, log: log}
}

// AnnulmentResult resultado de una anulación aprobada.
type AnnulmentResult struct {
	Annulment       *entity.Annulment
	Sale            *entity.Sale
	FiscalDocument  *entity.FiscalDocument
	RevertedBatches int
	CashReversal    *entity.CashMovement
}

// AnnulmentDetails anulación con su documento y venta.
type AnnulmentDetails struct {
	Annulment      *entity.Annulment
	FiscalDocument *entity.FiscalDocument
	Sale           *entity.Sale
}

// AnnulmentStats conteos por estado y tasa de aprobación (porcentaje).
type AnnulmentStats struct {
	Total        int
	Pending      int
	Approved     int
	Rejected     int
	ApprovalRate decimal.Decimal
}

// AnnulSale anula una venta completada con documento fiscal autorizado.
func (s *AnnulmentSaga) AnnulSale(ctx context.Context, saleID, userID, reason string) (*AnnulmentResult, error) {
	reason = strings.TrimSpace(reason)
	var ann *entity.Annulment
	err := s.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		doc, err := checkAnnullable(ctx, r, sale)
		if err != nil {
			return err
		}
		if reason == "" {
			return domain.ErrReasonRequired
		}
		now := s.clock.Now()
		ann = &entity.Annulment{
			ID:               uuid.New().String(),
			FiscalDocumentID: doc.ID,
			SaleID:           sale.ID,
			UserID:           userID,
			Reason:           reason,
			Status:           entity.AnnulmentStatusPending,
			CreatedAt:        now,
		}
		return r.Annulments.Create(ctx, ann)
	})
	if err != nil {
		return nil, err
	}

	res, err := s.process(ctx, ann)
	if err != nil {
		if rejErr := s.reject(ctx, ann, err); rejErr != nil {
			s.log.Error().Err(rejErr).Str("annulment_id", ann.ID).Msg("no se pudo marcar la anulación como rechazada")
		}
		s.log.Error().Err(err).Str("sale_id", saleID).Str("annulment_id", ann.ID).Msg("anulación rechazada")
		return nil, fmt.Errorf("error al procesar la anulación: %w", err)
	}
	s.log.Info().Str("sale_id", saleID).Str("annulment_id", ann.ID).Int("lotes_revertidos", res.RevertedBatches).
		Msg("anulación aprobada")
	return res, nil
}

// process secuencia compensatoria completa en una transacción.
func (s *AnnulmentSaga) process(ctx context.Context, ann *entity.Annulment) (*AnnulmentResult, error) {
	var res *AnnulmentResult
	err := s.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := r.Sales.GetForUpdate(ctx, ann.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		doc, err := r.FiscalDocuments.GetForUpdate(ctx, ann.FiscalDocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNoFiscalDocument
		}
		res = &AnnulmentResult{Sale: sale, FiscalDocument: doc}

		ref := inventory.Reference{Type: entity.ReferenceSale, ID: sale.ID}
		res.RevertedBatches, err = s.stock.RevertByReferenceInTx(ctx, r, ref, entity.ReferenceAnnulment, ann.UserID)
		if err != nil {
			return err
		}
		if err := s.fiscal.MarkAsAnnulledInTx(ctx, r, doc); err != nil {
			return err
		}
		if err := s.sales.MarkAnnulledInTx(ctx, r, sale); err != nil {
			return err
		}
		box, err := r.CashBoxes.FindOpen(ctx, true)
		if err != nil {
			return err
		}
		if box != nil && sale.Total.IsPositive() {
			res.CashReversal, err = s.cash.RegisterInTx(ctx, r, entity.CashMovementReversal, cashbox.MovementInput{
				CashBoxID:   box.ID,
				Amount:      sale.Total,
				Description: "Anulación de venta #" + sale.ID,
				UserID:      ann.UserID,
				SaleID:      sale.ID,
			})
			if err != nil {
				return err
			}
		}
		now := s.clock.Now()
		approved := *ann
		approved.Status = entity.AnnulmentStatusApproved
		approved.ProcessedAt = &now
		if err := r.Annulments.UpdateStatus(ctx, &approved); err != nil {
			return err
		}
		res.Annulment = &approved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AnnulmentSaga) reject(ctx context.Context, ann *entity.Annulment, cause error) error {
	// la transacción de rechazo no debe perderse si el ctx original ya expiró
	ctx = context.WithoutCancel(ctx)
	return s.txRunner.Run(ctx, func(r ports.Repos) error {
		now := s.clock.Now()
		ann.Status = entity.AnnulmentStatusRejected
		ann.ErrorMessage = cause.Error()
		ann.ProcessedAt = &now
		return r.Annulments.UpdateStatus(ctx, ann)
	})
}

// checkAnnullable precondiciones: venta completada con documento autorizado y sin anulación.
func checkAnnullable(ctx context.Context, r ports.Repos, sale *entity.Sale) (*entity.FiscalDocument, error) {
	switch sale.Status {
	case entity.SaleStatusAnnulled:
		return nil, domain.ErrAlreadyAnnulled
	case entity.SaleStatusCompleted:
	default:
		return nil, domain.ErrMustBeCompletedFirst
	}
	doc, err := r.FiscalDocuments.GetBySaleID(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNoFiscalDocument
	}
	existing, err := r.Annulments.GetByFiscalDocumentID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyHasAnnulment
	}
	if !doc.CanBeAnnulled() {
		return nil, domain.ErrNotAuthorized
	}
	return doc, nil
}

// CanAnnulSale verifica las precondiciones sin modificar nada. Nunca devuelve error:
// cualquier fallo se traduce en (false, motivo).
func (s *AnnulmentSaga) CanAnnulSale(ctx context.Context, saleID string) (bool, string) {
	err := s.txRunner.Run(ctx, func(r ports.Repos) error {
		sale, err := r.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		_, err = checkAnnullable(ctx, r, sale)
		return err
	})
	if err != nil {
		var kerr *domain.KindError
		if errors.As(err, &kerr) || errors.Is(err, domain.ErrNotFound) {
			return false, err.Error()
		}
		return false, "error verificando la venta: " + err.Error()
	}
	return true, "La venta puede ser anulada"
}

// GetDetails anulación con documento y venta.
func (s *AnnulmentSaga) GetDetails(ctx context.Context, id string) (*AnnulmentDetails, error) {
	var d *AnnulmentDetails
	err := s.txRunner.Run(ctx, func(r ports.Repos) error {
		ann, err := r.Annulments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ann == nil {
			return domain.ErrNotFound
		}
		doc, err := r.FiscalDocuments.GetByID(ctx, ann.FiscalDocumentID)
		if err != nil {
			return err
		}
		sale, err := r.Sales.GetByID(ctx, ann.SaleID)
		if err != nil {
			return err
		}
		d = &AnnulmentDetails{Annulment: ann, FiscalDocument: doc, Sale: sale}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List anulaciones con filtros.
func (s *AnnulmentSaga) List(ctx context.Context, f entity.AnnulmentFilter) ([]*entity.Annulment, error) {
	var out []*entity.Annulment
	err := s.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		out, err = r.Annulments.List(ctx, f)
		return err
	})
	return out, err
}

// Pending anulaciones pendientes.
func (s *AnnulmentSaga) Pending(ctx context.Context) ([]*entity.Annulment, error) {
	return s.List(ctx, entity.AnnulmentFilter{Status: entity.AnnulmentStatusPending})
}

// Stats conteos por estado y tasa de aprobación de las anulaciones creadas en [from, to].
func (s *AnnulmentSaga) Stats(ctx context.Context, from, to *time.Time) (*AnnulmentStats, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	var counts map[string]int
	err := s.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		counts, err = r.Annulments.CountByStatus(ctx, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	st := &AnnulmentStats{
		Pending:  counts[entity.AnnulmentStatusPending],
		Approved: counts[entity.AnnulmentStatusApproved],
		Rejected: counts[entity.AnnulmentStatusRejected],
	}
	st.Total = st.Pending + st.Approved + st.Rejected
	st.ApprovalRate = percent(st.Approved, st.Total)
	return st, nil
}

// percent part/total*100 con 2 decimales; 0 si total es 0.
func percent(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).Round(2)
}

func checkRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return domain.NewError(domain.ErrInvalidInput, "la fecha final es anterior a la inicial")
	}
	return nil
}

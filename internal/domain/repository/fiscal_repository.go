package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// FiscalDocumentRepository puerto de persistencia para documentos fiscales.
type FiscalDocumentRepository interface {
	Create(ctx context.Context, d *entity.FiscalDocument) error
	GetByID(ctx context.Context, id string) (*entity.FiscalDocument, error)
	GetBySaleID(ctx context.Context, saleID string) (*entity.FiscalDocument, error)
	GetForUpdate(ctx context.Context, id string) (*entity.FiscalDocument, error)
	UpdateStatus(ctx context.Context, d *entity.FiscalDocument) error
	List(ctx context.Context, f entity.FiscalDocumentFilter) ([]*entity.FiscalDocument, error)
	// CountByStatus conteo por estado de los documentos creados en [from, to]; nil no acota.
	CountByStatus(ctx context.Context, from, to *time.Time) (map[string]int, error)
}

// AnnulmentRepository puerto de persistencia para anulaciones.
type AnnulmentRepository interface {
	// Create debe devolver domain.ErrAlreadyHasAnnulment si el documento ya tiene una.
	Create(ctx context.Context, a *entity.Annulment) error
	GetByID(ctx context.Context, id string) (*entity.Annulment, error)
	GetByFiscalDocumentID(ctx context.Context, fiscalDocumentID string) (*entity.Annulment, error)
	UpdateStatus(ctx context.Context, a *entity.Annulment) error
	List(ctx context.Context, f entity.AnnulmentFilter) ([]*entity.Annulment, error)
	CountByStatus(ctx context.Context, from, to *time.Time) (map[string]int, error)
}

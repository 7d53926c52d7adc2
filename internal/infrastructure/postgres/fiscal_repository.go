package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.FiscalDocumentRepository = (*FiscalDocumentRepo)(nil)

// FiscalDocumentRepo documentos fiscales sobre PostgreSQL; AdditionalData se guarda como JSONB.
type FiscalDocumentRepo struct {
	q Querier
}

// NewFiscalDocumentRepository construye el adaptador de documentos fiscales. Pasar pool o tx (Querier).
func NewFiscalDocumentRepository(q Querier) *FiscalDocumentRepo {
	return &FiscalDocumentRepo{q: q}
}

const fiscalColumns = `id, sale_id, uuid, serie, number, document_type, status, signed_xml, pdf_ref, additional_data,
	rejection_reason, certified_at, annulled_at, created_at, updated_at`

func scanFiscalDocument(s scanner) (*entity.FiscalDocument, error) {
	var d entity.FiscalDocument
	if err := s.Scan(&d.ID, &d.SaleID, &d.UUID, &d.Serie, &d.Number, &d.DocumentType, &d.Status, &d.SignedXML,
		&d.PDFRef, &d.AdditionalData, &d.RejectionReason, &d.CertifiedAt, &d.AnnulledAt, &d.CreatedAt,
		&d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta el documento. sale_id y uuid son únicos.
func (r *FiscalDocumentRepo) Create(ctx context.Context, d *entity.FiscalDocument) error {
	additional := d.AdditionalData
	if additional == nil {
		additional = map[string]string{}
	}
	query := `
		INSERT INTO fiscal_documents (id, sale_id, uuid, serie, number, document_type, status, signed_xml, pdf_ref,
			additional_data, rejection_reason, certified_at, annulled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query, d.ID, d.SaleID, d.UUID, d.Serie, d.Number, d.DocumentType, d.Status, d.SignedXML,
		d.PDFRef, additional, d.RejectionReason, d.CertifiedAt, d.AnnulledAt, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == "fiscal_documents_uuid_key" {
				return domain.Errorf(domain.ErrConflict, "UUID fiscal duplicado: %s", d.UUID)
			}
			return domain.ErrAlreadyHasDocument
		}
		return fmt.Errorf("insert fiscal document: %w", err)
	}
	return nil
}

func (r *FiscalDocumentRepo) getOne(ctx context.Context, query, arg string) (*entity.FiscalDocument, error) {
	d, err := scanFiscalDocument(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal document: %w", err)
	}
	return d, nil
}

// GetByID obtiene un documento por ID.
func (r *FiscalDocumentRepo) GetByID(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	return r.getOne(ctx, `SELECT `+fiscalColumns+` FROM fiscal_documents WHERE id = $1`, id)
}

// GetBySaleID documento de la venta.
func (r *FiscalDocumentRepo) GetBySaleID(ctx context.Context, saleID string) (*entity.FiscalDocument, error) {
	return r.getOne(ctx, `SELECT `+fiscalColumns+` FROM fiscal_documents WHERE sale_id = $1`, saleID)
}

// GetForUpdate obtiene el documento y bloquea la fila.
func (r *FiscalDocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	return r.getOne(ctx, `SELECT `+fiscalColumns+` FROM fiscal_documents WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus persiste estado, motivo de rechazo y marcas de tiempo.
func (r *FiscalDocumentRepo) UpdateStatus(ctx context.Context, d *entity.FiscalDocument) error {
	cmd, err := r.q.Exec(ctx, `UPDATE fiscal_documents SET status = $2, rejection_reason = $3, annulled_at = $4,
		pdf_ref = $5, updated_at = $6 WHERE id = $1`, d.ID, d.Status, d.RejectionReason, d.AnnulledAt, d.PDFRef, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update fiscal document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List documentos con filtros opcionales.
func (r *FiscalDocumentRepo) List(ctx context.Context, f entity.FiscalDocumentFilter) ([]*entity.FiscalDocument, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= ?", *f.To)
	}
	rows, err := r.q.Query(ctx, `SELECT `+fiscalColumns+` FROM fiscal_documents`+w.sql()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list fiscal documents: %w", err)
	}
	list, err := collectRows(rows, scanFiscalDocument)
	if err != nil {
		return nil, fmt.Errorf("scan fiscal document: %w", err)
	}
	return list, nil
}

var _ repository.AnnulmentRepository = (*AnnulmentRepo)(nil)

// AnnulmentRepo anulaciones sobre PostgreSQL.
type AnnulmentRepo struct {
	q Querier
}

// NewAnnulmentRepository construye el adaptador de anulaciones. Pasar pool o tx (Querier).
func NewAnnulmentRepository(q Querier) *AnnulmentRepo {
	return &AnnulmentRepo{q: q}
}

const annulmentColumns = `id, fiscal_document_id, sale_id, user_id, reason, status, error_message, processed_at, created_at`

func scanAnnulment(s scanner) (*entity.Annulment, error) {
	var a entity.Annulment
	if err := s.Scan(&a.ID, &a.FiscalDocumentID, &a.SaleID, &a.UserID, &a.Reason, &a.Status, &a.ErrorMessage,
		&a.ProcessedAt, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta la anulación; fiscal_document_id es único.
func (r *AnnulmentRepo) Create(ctx context.Context, a *entity.Annulment) error {
	query := `
		INSERT INTO annulments (id, fiscal_document_id, sale_id, user_id, reason, status, error_message, processed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, a.ID, a.FiscalDocumentID, a.SaleID, a.UserID, a.Reason, a.Status, a.ErrorMessage,
		a.ProcessedAt, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyHasAnnulment
		}
		return fmt.Errorf("insert annulment: %w", err)
	}
	return nil
}

func (r *AnnulmentRepo) getOne(ctx context.Context, query, arg string) (*entity.Annulment, error) {
	a, err := scanAnnulment(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get annulment: %w", err)
	}
	return a, nil
}

// GetByID obtiene una anulación por ID.
func (r *AnnulmentRepo) GetByID(ctx context.Context, id string) (*entity.Annulment, error) {
	return r.getOne(ctx, `SELECT `+annulmentColumns+` FROM annulments WHERE id = $1`, id)
}

// GetByFiscalDocumentID anulación del documento, si existe.
func (r *AnnulmentRepo) GetByFiscalDocumentID(ctx context.Context, fiscalDocumentID string) (*entity.Annulment, error) {
	return r.getOne(ctx, `SELECT `+annulmentColumns+` FROM annulments WHERE fiscal_document_id = $1`, fiscalDocumentID)
}

// UpdateStatus persiste estado, mensaje de error y fecha de proceso.
func (r *AnnulmentRepo) UpdateStatus(ctx context.Context, a *entity.Annulment) error {
	cmd, err := r.q.Exec(ctx, `UPDATE annulments SET status = $2, error_message = $3, processed_at = $4 WHERE id = $1`,
		a.ID, a.Status, a.ErrorMessage, a.ProcessedAt)
	if err != nil {
		return fmt.Errorf("update annulment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List anulaciones con filtros opcionales.
func (r *AnnulmentRepo) List(ctx context.Context, f entity.AnnulmentFilter) ([]*entity.Annulment, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= ?", *f.To)
	}
	rows, err := r.q.Query(ctx, `SELECT `+annulmentColumns+` FROM annulments`+w.sql()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list annulments: %w", err)
	}
	list, err := collectRows(rows, scanAnnulment)
	if err != nil {
		return nil, fmt.Errorf("scan annulment: %w", err)
	}
	return list, nil
}

// CountByStatus conteo de anulaciones por estado en el rango de creación.
func (r *AnnulmentRepo) CountByStatus(ctx context.Context, from, to *time.Time) (map[string]int, error) {
	return countByStatus(ctx, r.q, "annulments", from, to)
}

// CountByStatus conteo de documentos por estado en el rango de creación.
func (r *FiscalDocumentRepo) CountByStatus(ctx context.Context, from, to *time.Time) (map[string]int, error) {
	return countByStatus(ctx, r.q, "fiscal_documents", from, to)
}

func countByStatus(ctx context.Context, q Querier, table string, from, to *time.Time) (map[string]int, error) {
	var w whereBuilder
	if from != nil {
		w.add("created_at >= ?", *from)
	}
	if to != nil {
		w.add("created_at <= ?", *to)
	}
	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM `+table+w.sql()+` GROUP BY status`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", table, err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan %s count: %w", table, err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

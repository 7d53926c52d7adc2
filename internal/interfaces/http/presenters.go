package http

import (
	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/application/cashbox"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Conversión de entidades y resultados de los ledgers a DTOs de respuesta.

func batchResponse(b *entity.StockBatch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		BatchNumber:       b.BatchNumber,
		ExpirationDate:    b.ExpirationDate,
		QuantityInitial:   b.QuantityInitial,
		QuantityAvailable: b.QuantityAvailable,
		Location:          b.Location,
		CreatedAt:         b.CreatedAt,
	}
}

func movementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:                m.ID,
		ProductID:         m.ProductID,
		BatchID:           m.BatchID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		SignedQuantity:    m.SignedQuantity(),
		ReferenceType:     m.ReferenceType,
		ReferenceID:       m.ReferenceID,
		RevertsMovementID: m.RevertsMovementID,
		UserID:            m.UserID,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
	}
}

func saleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		CashierID:    s.CashierID,
		CustomerName: s.CustomerName,
		CustomerNIT:  s.CustomerNIT,
		Status:       s.Status,
		Subtotal:     s.Subtotal,
		Tax:          s.Tax,
		Total:        s.Total,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		CompletedAt:  s.CompletedAt,
		AnnulledAt:   s.AnnulledAt,
	}
}

func saleItemResponse(i *entity.SaleItem) dto.SaleItemResponse {
	return dto.SaleItemResponse{
		ID:               i.ID,
		SaleID:           i.SaleID,
		ProductID:        i.ProductID,
		PresentationID:   i.PresentationID,
		ProductName:      i.ProductName,
		PresentationName: i.PresentationName,
		Factor:           i.Factor,
		Quantity:         i.Quantity,
		BaseUnits:        i.BaseUnits(),
		UnitPrice:        i.UnitPrice,
		Total:            i.Total,
	}
}

func saleItemResponses(items []*entity.SaleItem) []dto.SaleItemResponse {
	out := make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, saleItemResponse(it))
	}
	return out
}

func saleDetailResponse(s *sales.Summary) dto.SaleDetailResponse {
	return dto.SaleDetailResponse{
		Sale:         saleResponse(s.Sale),
		Items:        saleItemResponses(s.Items),
		ItemsCount:   s.ItemsCount,
		TotalUnits:   s.TotalUnits,
		FiscalStatus: s.FiscalStatus,
		FiscalUUID:   s.FiscalUUID,
	}
}

func cashBoxResponse(b *entity.CashBox) dto.CashBoxResponse {
	return dto.CashBoxResponse{
		ID:            b.ID,
		OpenedBy:      b.OpenedBy,
		ClosedBy:      b.ClosedBy,
		OpeningAmount: b.OpeningAmount,
		ClosingAmount: b.ClosingAmount,
		Notes:         b.Notes,
		IsOpen:        b.IsOpen(),
		OpenedAt:      b.OpenedAt,
		ClosedAt:      b.ClosedAt,
	}
}

func cashMovementResponse(m *entity.CashMovement) dto.CashMovementResponse {
	return dto.CashMovementResponse{
		ID:          m.ID,
		CashBoxID:   m.CashBoxID,
		Type:        m.Type,
		Amount:      m.Amount,
		Description: m.Description,
		UserID:      m.UserID,
		SaleID:      m.SaleID,
		CreatedAt:   m.CreatedAt,
	}
}

func cashSummaryResponse(s *cashbox.Summary) dto.CashBoxSummaryResponse {
	return dto.CashBoxSummaryResponse{
		CashBox:         cashBoxResponse(s.CashBox),
		OpeningAmount:   s.OpeningAmount,
		TotalIncome:     s.TotalIncome,
		TotalExpense:    s.TotalExpense,
		TotalReversal:   s.TotalReversal,
		ExpectedClosing: s.ExpectedClosing,
		ClosingAmount:   s.ClosingAmount,
		Difference:      s.Difference,
		NetMovement:     s.NetMovement,
		MovementsCount:  s.MovementsCount,
	}
}

func fiscalDocumentResponse(d *entity.FiscalDocument) dto.FiscalDocumentResponse {
	return dto.FiscalDocumentResponse{
		ID:              d.ID,
		SaleID:          d.SaleID,
		UUID:            d.UUID,
		Serie:           d.Serie,
		Number:          d.Number,
		DocumentType:    d.DocumentType,
		Status:          d.Status,
		PDFRef:          d.PDFRef,
		AdditionalData:  d.AdditionalData,
		RejectionReason: d.RejectionReason,
		CertifiedAt:     d.CertifiedAt,
		AnnulledAt:      d.AnnulledAt,
		CreatedAt:       d.CreatedAt,
	}
}

func fiscalDetailResponse(d *billing.FiscalDetails) dto.FiscalDocumentDetailResponse {
	out := dto.FiscalDocumentDetailResponse{
		Document: fiscalDocumentResponse(d.Document),
		Items:    saleItemResponses(d.Items),
	}
	if d.Sale != nil {
		s := saleResponse(d.Sale)
		out.Sale = &s
	}
	if d.Annulment != nil {
		a := annulmentResponse(d.Annulment)
		out.Annulment = &a
	}
	return out
}

func invoiceDataResponse(p *billing.InvoicePayload) dto.InvoiceDataResponse {
	out := dto.InvoiceDataResponse{
		SaleID:       p.SaleID,
		DocumentType: p.DocumentType,
		Currency:     p.Currency,
		IssuedAt:     p.IssuedAt,
		SellerNIT:    p.Seller.NIT,
		SellerName:   p.Seller.Name,
		BuyerNIT:     p.Buyer.NIT,
		BuyerName:    p.Buyer.Name,
		Lines:        make([]dto.InvoiceLineResponse, 0, len(p.Lines)),
		Subtotal:     p.Subtotal,
		Tax:          p.Tax,
		Total:        p.Total,
	}
	for _, l := range p.Lines {
		out.Lines = append(out.Lines, dto.InvoiceLineResponse{
			LineNumber:  l.LineNumber,
			ItemType:    l.ItemType,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			Total:       l.Total,
			TaxableBase: l.TaxableBase,
			TaxAmount:   l.TaxAmount,
		})
	}
	return out
}

func annulmentResponse(a *entity.Annulment) dto.AnnulmentResponse {
	return dto.AnnulmentResponse{
		ID:               a.ID,
		FiscalDocumentID: a.FiscalDocumentID,
		SaleID:           a.SaleID,
		UserID:           a.UserID,
		Reason:           a.Reason,
		Status:           a.Status,
		ErrorMessage:     a.ErrorMessage,
		ProcessedAt:      a.ProcessedAt,
		CreatedAt:        a.CreatedAt,
	}
}

func annulmentResultResponse(r *billing.AnnulmentResult) dto.AnnulmentResultResponse {
	out := dto.AnnulmentResultResponse{
		Annulment:       annulmentResponse(r.Annulment),
		Sale:            saleResponse(r.Sale),
		FiscalDocument:  fiscalDocumentResponse(r.FiscalDocument),
		RevertedBatches: r.RevertedBatches,
	}
	if r.CashReversal != nil {
		m := cashMovementResponse(r.CashReversal)
		out.CashReversal = &m
	}
	return out
}

func annulmentDetailResponse(d *billing.AnnulmentDetails) dto.AnnulmentDetailResponse {
	out := dto.AnnulmentDetailResponse{Annulment: annulmentResponse(d.Annulment)}
	if d.FiscalDocument != nil {
		f := fiscalDocumentResponse(d.FiscalDocument)
		out.FiscalDocument = &f
	}
	if d.Sale != nil {
		s := saleResponse(d.Sale)
		out.Sale = &s
	}
	return out
}

// mapSlice aplica f a cada elemento.
func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ProductUseCase casos de uso del catálogo: productos y presentaciones.
// El stock se maneja vía StockLedger.
type ProductUseCase struct {
	txRunner ports.TxRunner
	clock    ports.Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, clock ports.Clock) *ProductUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &ProductUseCase{txRunner: txRunner, clock: clock}
}

// Create crea un producto activo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "sku y nombre son obligatorios")
	}
	now := uc.clock.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		return r.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, nil, 0), nil
}

// AddPresentation agrega una presentación. Factor >= 1 y precio >= 0.
func (uc *ProductUseCase) AddPresentation(ctx context.Context, productID string, in dto.CreatePresentationRequest) (*dto.PresentationResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "el nombre de la presentación es obligatorio")
	}
	if in.Factor < 1 {
		return nil, domain.NewError(domain.ErrInvalidInput, "el factor debe ser al menos 1")
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	now := uc.clock.Now()
	p := &entity.Presentation{
		ID:        uuid.New().String(),
		ProductID: productID,
		Name:      in.Name,
		Factor:    in.Factor,
		Price:     in.Price.Round(2),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		return r.Products.CreatePresentation(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	resp := toPresentationResponse(p)
	return &resp, nil
}

// GetByID obtiene un producto con presentaciones y stock disponible. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetByID(ctx, id)
		if err != nil || product == nil {
			return err
		}
		out, err = uc.load(ctx, r, product)
		return err
	})
	return out, err
}

// List lista productos; activeOnly filtra los inactivos.
func (uc *ProductUseCase) List(ctx context.Context, activeOnly bool) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		products, err := r.Products.List(ctx, activeOnly)
		if err != nil {
			return err
		}
		out = make([]dto.ProductResponse, 0, len(products))
		for _, p := range products {
			resp, err := uc.load(ctx, r, p)
			if err != nil {
				return err
			}
			out = append(out, *resp)
		}
		return nil
	})
	return out, err
}

// Search productos activos cuyo nombre o SKU contienen q (sin distinguir mayúsculas).
func (uc *ProductUseCase) Search(ctx context.Context, q string) ([]dto.ProductResponse, error) {
	all, err := uc.List(ctx, true)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return all, nil
	}
	out := make([]dto.ProductResponse, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Presentations presentaciones de un producto. ErrNotFound si el producto no existe.
func (uc *ProductUseCase) Presentations(ctx context.Context, productID string) ([]dto.PresentationResponse, error) {
	var out []dto.PresentationResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		pres, err := r.Products.ListPresentations(ctx, productID)
		if err != nil {
			return err
		}
		out = make([]dto.PresentationResponse, 0, len(pres))
		for _, p := range pres {
			out = append(out, toPresentationResponse(p))
		}
		return nil
	})
	return out, err
}

// SetActive activa o desactiva un producto. Un producto inactivo no recibe stock ni se vende.
func (uc *ProductUseCase) SetActive(ctx context.Context, id string, active bool) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		return r.Products.SetActive(ctx, id, active)
	})
}

func (uc *ProductUseCase) load(ctx context.Context, r ports.Repos, p *entity.Product) (*dto.ProductResponse, error) {
	pres, err := r.Products.ListPresentations(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	stock, err := r.Batches.SumAvailable(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, pres, stock), nil
}

func toProductResponse(p *entity.Product, pres []*entity.Presentation, stock int) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Active:         p.Active,
		AvailableStock: stock,
		Presentations:  make([]dto.PresentationResponse, 0, len(pres)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, pr := range pres {
		out.Presentations = append(out.Presentations, toPresentationResponse(pr))
	}
	return out
}

func toPresentationResponse(p *entity.Presentation) dto.PresentationResponse {
	return dto.PresentationResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Name:      p.Name,
		Factor:    p.Factor,
		Price:     p.Price,
		Active:    p.Active,
	}
}

// Package demo carga datos de demostración: catálogo, lotes iniciales y un usuario por rol.
package demo

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// ProductSeed producto con su presentación por unidad y una presentación por caja.
type ProductSeed struct {
	SKU       string
	Name      string
	UnitPrice decimal.Decimal
	BoxName   string
	BoxFactor int
	BoxPrice  decimal.Decimal
	Quantity  int
}

// DefaultCatalog catálogo de ejemplo.
var DefaultCatalog = []ProductSeed{
	{SKU: "BEB-001", Name: "Coca Cola 350ml", UnitPrice: decimal.RequireFromString("5.00"), BoxName: "Caja", BoxFactor: 12, BoxPrice: decimal.RequireFromString("55.00"), Quantity: 100},
	{SKU: "BEB-002", Name: "Agua Pura 600ml", UnitPrice: decimal.RequireFromString("3.50"), BoxName: "Fardo", BoxFactor: 24, BoxPrice: decimal.RequireFromString("72.00"), Quantity: 100},
	{SKU: "ABA-001", Name: "Frijol negro 1lb", UnitPrice: decimal.RequireFromString("9.00"), BoxName: "Caja", BoxFactor: 12, BoxPrice: decimal.RequireFromString("100.00"), Quantity: 100},
	{SKU: "ABA-002", Name: "Café molido 400g", UnitPrice: decimal.RequireFromString("32.00"), BoxName: "Caja", BoxFactor: 6, BoxPrice: decimal.RequireFromString("180.00"), Quantity: 100},
	{SKU: "GAL-001", Name: "Galletas María", UnitPrice: decimal.RequireFromString("2.50"), BoxName: "Caja", BoxFactor: 12, BoxPrice: decimal.RequireFromString("27.00"), Quantity: 100},
}

// DefaultUsers un usuario por rol: email → rol.
var DefaultUsers = map[string]string{
	"admin@ventas.local":   entity.RoleAdmin,
	"gerente@ventas.local": entity.RoleManager,
	"cajero@ventas.local":  entity.RoleCashier,
	"bodega@ventas.local":  entity.RoleWarehouse,
}

// Loader aplica el catálogo y los usuarios a través de los casos de uso.
type Loader struct {
	Products *usecase.ProductUseCase
	Stock    *inventory.StockLedger
	Auth     *auth.AuthUseCase
	Now      func() time.Time
	Log      *logger.Logger
}

// Result conteos de lo cargado.
type Result struct {
	Products int
	Batches  int
	Users    int
}

// Load crea productos, presentaciones y un lote LOTE-NNNN por producto que vence en dos años.
// Los usuarios se crean con password; los existentes (email duplicado) se omiten.
func (l *Loader) Load(ctx context.Context, catalog []ProductSeed, password string) (*Result, error) {
	log := l.Log
	if log == nil {
		log = logger.Nop()
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	expiration := now().AddDate(2, 0, 0).Truncate(24 * time.Hour)
	res := &Result{}

	for i, p := range catalog {
		product, err := l.Products.Create(ctx, dto.CreateProductRequest{SKU: p.SKU, Name: p.Name})
		if errors.Is(err, domain.ErrConflict) {
			log.Warn().Str("sku", p.SKU).Msg("producto ya existe, se omite")
			continue
		}
		if err != nil {
			return res, fmt.Errorf("producto %s: %w", p.SKU, err)
		}
		res.Products++
		if _, err := l.Products.AddPresentation(ctx, product.ID, dto.CreatePresentationRequest{
			Name: "Unidad", Factor: 1, Price: p.UnitPrice,
		}); err != nil {
			return res, fmt.Errorf("presentación unidad %s: %w", p.SKU, err)
		}
		if p.BoxFactor > 1 {
			if _, err := l.Products.AddPresentation(ctx, product.ID, dto.CreatePresentationRequest{
				Name: p.BoxName + " x" + strconv.Itoa(p.BoxFactor), Factor: p.BoxFactor, Price: p.BoxPrice,
			}); err != nil {
				return res, fmt.Errorf("presentación caja %s: %w", p.SKU, err)
			}
		}
		if p.Quantity > 0 {
			if _, err := l.Stock.AddStock(ctx, inventory.AddStockInput{
				ProductID:      product.ID,
				BatchNumber:    fmt.Sprintf("LOTE-%04d", i+1),
				ExpirationDate: &expiration,
				Quantity:       p.Quantity,
				Location:       "Bodega principal",
			}); err != nil {
				return res, fmt.Errorf("lote %s: %w", p.SKU, err)
			}
			res.Batches++
		}
	}

	if password != "" && l.Auth != nil {
		for email, role := range DefaultUsers {
			_, err := l.Auth.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: password, Name: role, Role: role})
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			if err != nil {
				return res, fmt.Errorf("usuario %s: %w", email, err)
			}
			res.Users++
		}
	}
	log.Info().Int("productos", res.Products).Int("lotes", res.Batches).Int("usuarios", res.Users).Msg("datos de demostración cargados")
	return res, nil
}

// ParseCatalogCSV lee un catálogo separado por ';' con encabezado:
//
//	sku;nombre;precio_unidad;presentacion;factor;precio_presentacion;cantidad
//
// Con latin1 el archivo se decodifica desde ISO-8859-1 (exportaciones de sistemas antiguos).
func ParseCatalogCSV(r io.Reader, latin1 bool) ([]ProductSeed, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 7

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	var out []ProductSeed
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		p, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseRecord(rec []string) (ProductSeed, error) {
	unit, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
	if err != nil {
		return ProductSeed{}, fmt.Errorf("precio_unidad: %w", err)
	}
	factor, err := strconv.Atoi(strings.TrimSpace(rec[4]))
	if err != nil {
		return ProductSeed{}, fmt.Errorf("factor: %w", err)
	}
	box := decimal.Zero
	if s := strings.TrimSpace(rec[5]); s != "" {
		if box, err = decimal.NewFromString(s); err != nil {
			return ProductSeed{}, fmt.Errorf("precio_presentacion: %w", err)
		}
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rec[6]))
	if err != nil {
		return ProductSeed{}, fmt.Errorf("cantidad: %w", err)
	}
	return ProductSeed{
		SKU:       strings.TrimSpace(rec[0]),
		Name:      strings.TrimSpace(rec[1]),
		UnitPrice: unit,
		BoxName:   strings.TrimSpace(rec[3]),
		BoxFactor: factor,
		BoxPrice:  box,
		Quantity:  qty,
	}, nil
}

package usecase

import (
	"context"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

// SupplierUseCase consultas de fornitori, materie prime e histórico de precios.
// La escritura la hace la importación de fatture.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	prices    repository.PriceHistoryRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers repository.SupplierRepository, products repository.ProductRepository, prices repository.PriceHistoryRepository) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers, products: products, prices: prices}
}

// List devuelve una página de proveedores.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.suppliers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := toSupplierResponse(s)
	return &out, nil
}

// Products devuelve las materie prime del proveedor.
func (uc *SupplierUseCase) Products(ctx context.Context, supplierID string) ([]dto.ProductResponse, error) {
	list, err := uc.products.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductResponse{
			ID:          p.ID,
			SupplierID:  p.SupplierID,
			Code:        p.Code,
			Name:        p.Name,
			UnitMeasure: p.UnitMeasure,
			LastPrice:   p.LastPrice,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return out, nil
}

// PriceHistory devuelve el histórico de precios de una materia prima.
func (uc *SupplierUseCase) PriceHistory(ctx context.Context, productID string) ([]dto.PriceHistoryResponse, error) {
	list, err := uc.prices.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryResponse, 0, len(list))
	for _, ph := range list {
		out = append(out, dto.PriceHistoryResponse{
			Price:         ph.Price,
			Quantity:      ph.Quantity,
			InvoiceNumber: ph.InvoiceNumber,
			InvoiceDate:   ph.InvoiceDate.Format("2006-01-02"),
		})
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		VATNumber: s.VATNumber,
		TaxCode:   s.TaxCode,
		Address:   s.Address,
		City:      s.City,
		Country:   s.Country,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

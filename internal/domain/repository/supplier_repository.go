package repository

import (
	"context"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

// SupplierRepository puerto de persistencia para fornitori.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByVAT(ctx context.Context, vat string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
}

// ProductRepository puerto de persistencia para materie prime.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetBySupplierAndCode(ctx context.Context, supplierID, code string) (*entity.Product, error)
	// GetBySupplierAndName busca por nombre sin distinguir mayúsculas.
	GetBySupplierAndName(ctx context.Context, supplierID, name string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Product, error)
}

// PriceHistoryRepository puerto para el histórico de precios.
type PriceHistoryRepository interface {
	// Create inserta el precio; devuelve false si ya existía (mismo producto, número y fecha de fattura).
	Create(ctx context.Context, ph *entity.PriceHistory) (bool, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.PriceHistory, error)
}

// InvoiceImportRepository puerto para el registro de XML importados.
type InvoiceImportRepository interface {
	Create(ctx context.Context, imp *entity.InvoiceImport) error
	GetByDigest(ctx context.Context, digest string) (*entity.InvoiceImport, error)
	List(ctx context.Context, limit, offset int) ([]entity.InvoiceImport, error)
}

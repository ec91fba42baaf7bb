package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update writes every column except quantity, which only moves
	// through SetQuantity and the atomic helpers
	Update(ctx context.Context, product *entity.Product) error
	// SetQuantity overwrites stock, for manual stock corrections
	SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListAll returns every product matching the filter, unpaginated (stock value)
	ListAll(ctx context.Context, params *ProductFilterParams) ([]entity.Product, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AtomicDecrementQuantity decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock.
	AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	AtomicIncrementQuantity(ctx context.Context, id uuid.UUID, amount int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}

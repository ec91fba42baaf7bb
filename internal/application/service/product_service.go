package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/money"
	"github.com/sangkips/stockboard-api/pkg/pagination"
	"github.com/sangkips/stockboard-api/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Code          string
	Category      string
	Quantity      int
	QuantityAlert int
	BuyingPrice   float64
	SellingPrice  float64
	Notes         *string
	ProductImage  *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	// Auto-generate code if not provided
	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existingProduct, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	slug, err := s.uniqueSlug(ctx, input.Name, code)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		UserID:        me.UserID,
		Name:          input.Name,
		Slug:          slug,
		Code:          code,
		Category:      strings.TrimSpace(input.Category),
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		BuyingPrice:   money.ToCents(input.BuyingPrice),
		SellingPrice:  money.ToCents(input.SellingPrice),
		Notes:         input.Notes,
		ProductImage:  input.ProductImage,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// uniqueSlug slugifies name and falls back to name-code when taken
func (s *ProductService) uniqueSlug(ctx context.Context, name, code string) (string, error) {
	slug := utils.Slugify(name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if existing == nil && slug != "" {
		return slug, nil
	}
	return utils.Slugify(name + " " + code), nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID            uuid.UUID
	Name          *string
	Code          *string
	Category      *string
	Quantity      *int
	QuantityAlert *int
	BuyingPrice   *float64
	SellingPrice  *float64
	Notes         *string
	ProductImage  *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Check if new code is unique
	if input.Code != nil && *input.Code != product.Code {
		existingProduct, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existingProduct != nil && existingProduct.ID != product.ID {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}

	if input.Name != nil && *input.Name != product.Name {
		slug, err := s.uniqueSlug(ctx, *input.Name, product.Code)
		if err != nil {
			return nil, err
		}
		product.Name = *input.Name
		product.Slug = slug
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		product.BuyingPrice = money.ToCents(*input.BuyingPrice)
	}
	if input.SellingPrice != nil {
		product.SellingPrice = money.ToCents(*input.SellingPrice)
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}
	if input.ProductImage != nil {
		product.ProductImage = input.ProductImage
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	if input.Quantity != nil {
		if err := s.productRepo.SetQuantity(ctx, product.ID, *input.Quantity); err != nil {
			return nil, err
		}
	}

	return s.GetProduct(ctx, product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// GetLowStockProducts returns products at or below their alert level
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// StockValue is the selling value of the products matched by a filter
type StockValue struct {
	TotalValue    float64 `json:"total_value"`
	TotalQuantity int     `json:"total_quantity"`
	ProductCount  int     `json:"product_count"`
}

// GetStockValue sums selling price × stock over every product the filter
// matches. Pagination in params is ignored.
func (s *ProductService) GetStockValue(ctx context.Context, params *repository.ProductFilterParams) (*StockValue, error) {
	products, err := s.productRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}
	return stockValueOf(products), nil
}

func stockValueOf(products []entity.Product) *StockValue {
	lines := make([]metrics.StockLine, 0, len(products))
	quantity := 0
	for _, p := range products {
		lines = append(lines, metrics.StockLine{Price: money.FromCents(p.SellingPrice), Stock: p.Quantity})
		quantity += p.Quantity
	}
	return &StockValue{
		TotalValue:    metrics.Round2(metrics.StockValue(lines)),
		TotalQuantity: quantity,
		ProductCount:  len(products),
	}
}

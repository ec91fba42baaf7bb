package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/money"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// PurchaseService records stock bought from suppliers
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchaseRepo repository.PurchaseRepository, productRepo repository.ProductRepository) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
	}
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	ProductID    uuid.UUID
	SupplierName string
	UnitPrice    float64
	Quantity     int
}

// CreatePurchase records a purchase and adds its quantity to stock
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, apperror.NewFieldError("quantity", "must be greater than zero")
	}
	if input.UnitPrice < 0 {
		return nil, apperror.NewFieldError("unit_price", "must not be negative")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	purchase := &entity.Purchase{
		SellerID:     me.UserID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		SupplierName: input.SupplierName,
		UnitPrice:    money.ToCents(input.UnitPrice),
		Quantity:     input.Quantity,
	}
	// Total is computed server-side, never taken from the client
	purchase.TotalPrice = money.Multiply(purchase.UnitPrice, purchase.Quantity)

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	if err := s.productRepo.AtomicIncrementQuantity(ctx, product.ID, input.Quantity); err != nil {
		return nil, fmt.Errorf("increment stock for purchase %s: %w", purchase.ID, err)
	}

	return purchase, nil
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// DeletePurchase removes a purchase and takes its quantity back out of
// stock. It fails when part of that stock has already been sold.
func (s *PurchaseService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	purchase, err := s.GetPurchase(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.productRepo.AtomicDecrementQuantity(ctx, purchase.ProductID, purchase.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewConflictError("Purchased stock has already been sold")
	}

	return s.purchaseRepo.Delete(ctx, purchase.ID)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/logger"
	"github.com/sangkips/stockboard-api/pkg/money"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// SaleService records sales and keeps stock in step with them
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	ProductID    uuid.UUID
	Quantity     int
	SellingPrice *float64 // Defaults to the product's selling price
	BuyerName    string
	PaymentMode  enum.PaymentMode
}

// CreateSale records a sale for the caller. The product name and cost are
// copied onto the sale so later price changes do not rewrite history.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if !input.PaymentMode.IsValid() {
		return nil, apperror.NewFieldError("payment_mode", "must be one of cash, momo, cheque, transfer")
	}
	if input.Quantity <= 0 {
		return nil, apperror.NewFieldError("quantity", "must be greater than zero")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	sellingPrice := product.SellingPrice
	if input.SellingPrice != nil {
		if *input.SellingPrice < 0 {
			return nil, apperror.NewFieldError("selling_price", "must not be negative")
		}
		sellingPrice = money.ToCents(*input.SellingPrice)
	}

	ok, err := s.productRepo.AtomicDecrementQuantity(ctx, product.ID, input.Quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for %s", product.Name))
	}

	sale := &entity.Sale{
		UserID:       me.UserID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		SellingPrice: sellingPrice,
		ProductPrice: product.BuyingPrice,
		Quantity:     input.Quantity,
		BuyerName:    input.BuyerName,
		PaymentMode:  input.PaymentMode,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Give the stock back; the sale never happened
		if restoreErr := s.productRepo.AtomicIncrementQuantity(ctx, product.ID, input.Quantity); restoreErr != nil {
			logger.FromContext(ctx).WithError(restoreErr).
				WithField("product_id", product.ID).
				Error("failed to restore stock after sale insert failed")
		}
		return nil, err
	}

	return sale, nil
}

// GetSale retrieves a sale visible to the caller
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales visible to the caller
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales newest first with keyset pagination
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewCursorPaginatedResult(sales, params.Cursor.Limit,
		func(sale entity.Sale) (string, time.Time) { return sale.ID.String(), sale.CreatedAt },
	), nil
}

// DeleteSale removes a sale and puts its quantity back in stock
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return err
	}

	if err := s.saleRepo.Void(ctx, sale); err != nil {
		logger.FromContext(ctx).WithError(err).
			WithField("sale_id", sale.ID).
			Error("failed to void sale")
		return err
	}
	return nil
}

// SummarizeSales totals the caller's visible sales created in [from, to).
// Sellers get their own figures; admins and keepers the whole shop's.
func (s *SaleService) SummarizeSales(ctx context.Context, from, to time.Time) (*metrics.SaleSummary, error) {
	if !to.After(from) {
		return nil, apperror.NewFieldError("end_date", "must not be before start_date")
	}

	sales, err := s.saleRepo.Between(ctx, from, to)
	if err != nil {
		return nil, err
	}

	lines := make([]metrics.SaleLine, 0, len(sales))
	for _, sale := range sales {
		lines = append(lines, saleLineOf(sale))
	}
	summary := metrics.SummarizeSales(lines)
	summary.Revenue = metrics.Round2(summary.Revenue)
	summary.Profit = metrics.Round2(summary.Profit)
	return &summary, nil
}

func saleLineOf(sale entity.Sale) metrics.SaleLine {
	return metrics.SaleLine{
		PaymentMode:  string(sale.PaymentMode),
		SellingPrice: money.FromCents(sale.SellingPrice),
		CostPrice:    money.FromCents(sale.ProductPrice),
		Quantity:     sale.Quantity,
	}
}

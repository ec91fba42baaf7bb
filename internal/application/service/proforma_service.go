package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/money"
	"github.com/sangkips/stockboard-api/pkg/pagination"
	"github.com/sangkips/stockboard-api/pkg/utils"
)

// ProformaService issues priced offers. Proformas never touch stock.
type ProformaService struct {
	proformaRepo repository.ProformaRepository
	productRepo  repository.ProductRepository
}

// NewProformaService creates a new proforma service
func NewProformaService(proformaRepo repository.ProformaRepository, productRepo repository.ProductRepository) *ProformaService {
	return &ProformaService{
		proformaRepo: proformaRepo,
		productRepo:  productRepo,
	}
}

// ProformaItemInput is one requested line. Either ProductID or ProductName
// must be set; UnitPrice defaults to the product's selling price.
type ProformaItemInput struct {
	ProductID   *uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   *float64
}

// CreateProformaInput represents the create proforma input
type CreateProformaInput struct {
	ClientName  string
	ClientPhone string
	ValidUntil  *time.Time
	Note        *string
	Items       []ProformaItemInput
}

// CreateProforma prices every line and stores the proforma
func (s *ProformaService) CreateProforma(ctx context.Context, input *CreateProformaInput) (*entity.Proforma, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}

	proforma := &entity.Proforma{
		UserID:      me.UserID,
		Reference:   utils.GenerateReferenceNo("PRF"),
		ClientName:  input.ClientName,
		ClientPhone: input.ClientPhone,
		ValidUntil:  input.ValidUntil,
		Note:        input.Note,
		Items:       make([]entity.ProformaItem, 0, len(input.Items)),
	}

	for i, line := range input.Items {
		item, err := s.priceItem(ctx, i, line)
		if err != nil {
			return nil, err
		}
		proforma.TotalAmount += item.SubTotal
		proforma.Items = append(proforma.Items, *item)
	}

	if err := s.proformaRepo.Create(ctx, proforma); err != nil {
		return nil, err
	}
	return proforma, nil
}

func (s *ProformaService) priceItem(ctx context.Context, index int, line ProformaItemInput) (*entity.ProformaItem, error) {
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", index, name) }

	if line.Quantity <= 0 {
		return nil, apperror.NewFieldError(field("quantity"), "must be greater than zero")
	}

	item := &entity.ProformaItem{
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
	}

	if line.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		item.ProductID = &product.ID
		item.ProductName = product.Name
		item.UnitPrice = product.SellingPrice
	} else if line.ProductName == "" {
		return nil, apperror.NewFieldError(field("product_name"), "required when product_id is empty")
	}

	if line.UnitPrice != nil {
		if *line.UnitPrice < 0 {
			return nil, apperror.NewFieldError(field("unit_price"), "must not be negative")
		}
		item.UnitPrice = money.ToCents(*line.UnitPrice)
	}

	item.SubTotal = money.Multiply(item.UnitPrice, item.Quantity)
	return item, nil
}

// GetProforma retrieves a proforma with its items
func (s *ProformaService) GetProforma(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	proforma, err := s.proformaRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if proforma == nil {
		return nil, apperror.NewNotFoundError("Proforma")
	}
	return proforma, nil
}

// ListProformas lists proformas visible to the caller
func (s *ProformaService) ListProformas(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Proforma], error) {
	proformas, total, err := s.proformaRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(proformas, pag), nil
}

// DeleteProforma deletes a proforma and its items
func (s *ProformaService) DeleteProforma(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProforma(ctx, id); err != nil {
		return err
	}
	return s.proformaRepo.Delete(ctx, id)
}

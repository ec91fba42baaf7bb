package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// Void deletes the sale and returns its quantity to the product's
	// stock in one transaction
	Void(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListWithCursor returns up to Limit+1 sales, newest first
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	// Between returns every sale created in [from, to)
	Between(ctx context.Context, from, to time.Time) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	PaymentMode *enum.PaymentMode
	ProductID   *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	SortBy      string
	SortOrder   string
}

// SaleCursorFilterParams contains cursor-based filtering for sale queries
type SaleCursorFilterParams struct {
	Cursor      *pagination.CursorParams
	PaymentMode *enum.PaymentMode
	StartDate   *time.Time
	EndDate     *time.Time
}

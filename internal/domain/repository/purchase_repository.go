package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
}

// PurchaseFilterParams contains filtering parameters for purchase queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ProductID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

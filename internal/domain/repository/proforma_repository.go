package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// ProformaRepository defines the interface for proforma invoice operations
type ProformaRepository interface {
	// Create stores the proforma and its items in one transaction
	Create(ctx context.Context, proforma *entity.Proforma) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proforma, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Proforma, int64, error)
}

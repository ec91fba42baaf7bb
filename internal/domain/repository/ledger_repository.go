package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// CreditRepository defines the interface for customer credit operations
type CreditRepository interface {
	Create(ctx context.Context, credit *entity.Credit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Credit, error)
	// AddPayment adds cents to the down payment of an open credit as long
	// as the total is not exceeded, settling it once fully paid. It
	// reports false when no open credit could take the payment.
	AddPayment(ctx context.Context, id uuid.UUID, cents int64) (bool, error)
	Settle(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.Credit, int64, error)
}

// DebitRepository defines the interface for supplier debit operations
type DebitRepository interface {
	Create(ctx context.Context, debit *entity.Debit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Debit, error)
	// AddPayment is CreditRepository.AddPayment for the paid amount
	AddPayment(ctx context.Context, id uuid.UUID, cents int64) (bool, error)
	Settle(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.Debit, int64, error)
}

// LedgerFilterParams filters credits and debits
type LedgerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // Matches the customer or supplier name
	Status     *enum.SettlementStatus
}

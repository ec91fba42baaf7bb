package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/money"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// CreditService tracks goods sold to customers on credit
type CreditService struct {
	creditRepo repository.CreditRepository
}

// NewCreditService creates a new credit service
func NewCreditService(creditRepo repository.CreditRepository) *CreditService {
	return &CreditService{creditRepo: creditRepo}
}

// withCreditAmount fills the derived outstanding amount
func withCreditAmount(c *entity.Credit) *entity.Credit {
	c.CreditAmount = metrics.Round2(metrics.CreditAmount(money.FromCents(c.TotalAmount), money.FromCents(c.DownPayment)))
	return c
}

// CreateCreditInput represents the create credit input
type CreateCreditInput struct {
	CustomerName  string
	CustomerPhone string
	Description   string
	TotalAmount   float64
	DownPayment   float64
	DueDate       *time.Time
}

// CreateCredit opens a credit for a customer
func (s *CreditService) CreateCredit(ctx context.Context, input *CreateCreditInput) (*entity.Credit, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if input.TotalAmount < 0 {
		return nil, apperror.NewFieldError("total_amount", "must not be negative")
	}
	if input.DownPayment < 0 {
		return nil, apperror.NewFieldError("down_payment", "must not be negative")
	}
	if input.DownPayment > input.TotalAmount {
		return nil, apperror.NewFieldError("down_payment", "must not exceed total_amount")
	}

	credit := &entity.Credit{
		UserID:        me.UserID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Description:   input.Description,
		TotalAmount:   money.ToCents(input.TotalAmount),
		DownPayment:   money.ToCents(input.DownPayment),
		DueDate:       input.DueDate,
		Status:        enum.SettlementOpen,
	}
	if credit.DownPayment == credit.TotalAmount {
		credit.Status = enum.SettlementSettled
	}

	if err := s.creditRepo.Create(ctx, credit); err != nil {
		return nil, err
	}
	return withCreditAmount(credit), nil
}

// GetCredit retrieves a credit visible to the caller
func (s *CreditService) GetCredit(ctx context.Context, id uuid.UUID) (*entity.Credit, error) {
	credit, err := s.creditRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, apperror.NewNotFoundError("Credit")
	}
	return withCreditAmount(credit), nil
}

// ListCredits lists credits visible to the caller
func (s *CreditService) ListCredits(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.Credit], error) {
	credits, total, err := s.creditRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range credits {
		withCreditAmount(&credits[i])
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(credits, pag), nil
}

// RecordCreditPayment adds a payment to the credit. The credit settles once
// nothing is owed.
func (s *CreditService) RecordCreditPayment(ctx context.Context, id uuid.UUID, amount float64) (*entity.Credit, error) {
	if amount <= 0 {
		return nil, apperror.NewFieldError("amount", "must be greater than zero")
	}

	if _, err := s.GetCredit(ctx, id); err != nil {
		return nil, err
	}

	ok, err := s.creditRepo.AddPayment(ctx, id, money.ToCents(amount))
	if err != nil {
		return nil, err
	}

	credit, err := s.GetCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		if credit.Status == enum.SettlementSettled {
			return nil, apperror.NewBadRequestError("Credit is already settled")
		}
		return nil, apperror.NewFieldError("amount", "exceeds the outstanding credit")
	}
	return credit, nil
}

// SettleCredit marks a credit settled whatever is still owed
func (s *CreditService) SettleCredit(ctx context.Context, id uuid.UUID) (*entity.Credit, error) {
	if _, err := s.GetCredit(ctx, id); err != nil {
		return nil, err
	}
	if err := s.creditRepo.Settle(ctx, id); err != nil {
		return nil, err
	}
	return s.GetCredit(ctx, id)
}

// DeleteCredit deletes a credit
func (s *CreditService) DeleteCredit(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCredit(ctx, id); err != nil {
		return err
	}
	return s.creditRepo.Delete(ctx, id)
}

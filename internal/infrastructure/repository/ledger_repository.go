package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	domainRepo "github.com/sangkips/stockboard-api/internal/domain/repository"
	"gorm.io/gorm"
)

type creditRepository struct {
	db *gorm.DB
}

// NewCreditRepository creates a new credit repository
func NewCreditRepository(db *gorm.DB) domainRepo.CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) Create(ctx context.Context, credit *entity.Credit) error {
	return r.db.WithContext(ctx).Create(credit).Error
}

func (r *creditRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Credit, error) {
	var credit entity.Credit
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx, "user_id")).
		First(&credit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &credit, err
}

// AddPayment runs as one conditional UPDATE so concurrent payments cannot
// overwrite each other. SET expressions read the pre-update row.
func (r *creditRepository) AddPayment(ctx context.Context, id uuid.UUID, cents int64) (bool, error) {
	return addPayment(r.db.WithContext(ctx).Model(&entity.Credit{}), id, "down_payment", cents)
}

func (r *creditRepository) Settle(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Credit{}).
		Where("id = ?", id).
		Update("status", enum.SettlementSettled).Error
}

func (r *creditRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Credit{}, "id = ?", id).Error
}

func (r *creditRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.Credit, int64, error) {
	var credits []entity.Credit
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Credit{}).
		Scopes(OwnerScope(ctx, "user_id"))

	if params.Search != "" {
		query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("created_at DESC").
		Find(&credits).Error

	return credits, total, err
}

type debitRepository struct {
	db *gorm.DB
}

// NewDebitRepository creates a new debit repository
func NewDebitRepository(db *gorm.DB) domainRepo.DebitRepository {
	return &debitRepository{db: db}
}

func (r *debitRepository) Create(ctx context.Context, debit *entity.Debit) error {
	return r.db.WithContext(ctx).Create(debit).Error
}

func (r *debitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Debit, error) {
	var debit entity.Debit
	err := r.db.WithContext(ctx).First(&debit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &debit, err
}

func (r *debitRepository) AddPayment(ctx context.Context, id uuid.UUID, cents int64) (bool, error) {
	return addPayment(r.db.WithContext(ctx).Model(&entity.Debit{}), id, "paid_amount", cents)
}

func (r *debitRepository) Settle(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Debit{}).
		Where("id = ?", id).
		Update("status", enum.SettlementSettled).Error
}

func (r *debitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Debit{}, "id = ?", id).Error
}

func (r *debitRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.Debit, int64, error) {
	var debits []entity.Debit
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Debit{})

	if params.Search != "" {
		query = query.Where("supplier_name ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("created_at DESC").
		Find(&debits).Error

	return debits, total, err
}

// addPayment adds cents to column of an open row, never past total_amount,
// and settles the row when the new amount reaches the total.
// Uses: UPDATE ... SET column = column + cents WHERE id = ? AND status = open AND column + cents <= total_amount
func addPayment(query *gorm.DB, id uuid.UUID, column string, cents int64) (bool, error) {
	status := gorm.Expr("CASE WHEN "+column+" + ? >= total_amount THEN ? ELSE status END", cents, enum.SettlementSettled)
	result := query.
		Where("id = ? AND status = ? AND "+column+" + ? <= total_amount", id, enum.SettlementOpen, cents).
		Updates(map[string]interface{}{column: gorm.Expr(column+" + ?", cents), "status": status})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

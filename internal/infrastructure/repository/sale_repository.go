package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockboard-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

var saleSortColumns = map[string]string{
	"created_at":    "created_at",
	"selling_price": "selling_price",
	"quantity":      "quantity",
	"product_name":  "product_name",
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx, "user_id")).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Void(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.Sale{}, "id = ?", sale.ID).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Product{}).
			Where("id = ?", sale.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", sale.Quantity)).Error
	})
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(OwnerScope(ctx, "user_id"), DateRangeScope("created_at", params.StartDate, params.EndDate))

	if params.Search != "" {
		query = query.Where("product_name ILIKE ? OR buyer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.PaymentMode != nil {
		query = query.Where("payment_mode = ?", *params.PaymentMode)
	}

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if col, ok := saleSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

// ListWithCursor returns sales newest first using keyset pagination
func (r *saleRepository) ListWithCursor(ctx context.Context, params *domainRepo.SaleCursorFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(OwnerScope(ctx, "user_id"), DateRangeScope("created_at", params.StartDate, params.EndDate))

	if params.PaymentMode != nil {
		query = query.Where("payment_mode = ?", *params.PaymentMode)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Cursor.Limit + 1).
		Order("created_at DESC, id DESC").
		Find(&sales).Error

	return sales, err
}

func (r *saleRepository) Between(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx, "user_id")).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockboard-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

var productSortColumns = map[string]string{
	"name":          "name",
	"quantity":      "quantity",
	"selling_price": "selling_price",
	"created_at":    "created_at",
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.first(ctx, "code = ?", code)
}

func (r *productRepository) first(ctx context.Context, cond string, arg interface{}) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Model(product).
		Select("*").
		Omit("id", "quantity", "user_id", "created_at").
		Updates(product).Error
}

func (r *productRepository) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) filtered(ctx context.Context, params *domainRepo.ProductFilterParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.LowStock {
		query = query.Where("quantity <= quantity_alert")
	}
	return query
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.filtered(ctx, params)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if col, ok := productSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListAll(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, error) {
	var products []entity.Product
	err := r.filtered(ctx, params).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("quantity <= quantity_alert").
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

// AtomicDecrementQuantity atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE products SET quantity = quantity - amount WHERE id = ? AND quantity >= amount
func (r *productRepository) AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

// AtomicIncrementQuantity adds stock back (purchases, deleted sales)
func (r *productRepository) AtomicIncrementQuantity(ctx context.Context, id uuid.UUID, amount int) error {
	return r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", amount)).Error
}

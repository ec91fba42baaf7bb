package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	domainRepo "github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/pagination"
	"gorm.io/gorm"
)

type proformaRepository struct {
	db *gorm.DB
}

// NewProformaRepository creates a new proforma repository
func NewProformaRepository(db *gorm.DB) domainRepo.ProformaRepository {
	return &proformaRepository{db: db}
}

// Create inserts the proforma; gorm saves Items in the same transaction
func (r *proformaRepository) Create(ctx context.Context, proforma *entity.Proforma) error {
	return r.db.WithContext(ctx).Create(proforma).Error
}

func (r *proformaRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx, "user_id")).
		Preload("Items").
		First(&proforma, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proforma_id = ?", id).Delete(&entity.ProformaItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Proforma{}, "id = ?", id).Error
	})
}

func (r *proformaRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Proforma, int64, error) {
	var proformas []entity.Proforma
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Proforma{}).
		Scopes(OwnerScope(ctx, "user_id"))

	if search != "" {
		query = query.Where("reference ILIKE ? OR client_name ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("created_at DESC").
		Find(&proformas).Error

	return proformas, total, err
}

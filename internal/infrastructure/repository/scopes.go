package repository

import (
	"context"
	"time"

	"github.com/sangkips/stockboard-api/internal/domain/identity"
	"github.com/sangkips/stockboard-api/pkg/pagination"
	"gorm.io/gorm"
)

// OwnerScope returns a GORM scope that limits rows to the caller's own
// records unless the caller may see everyone's. column names the owner
// column, usually "user_id".
func OwnerScope(ctx context.Context, column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		id, ok := identity.FromContext(ctx)
		if !ok {
			// Fail-safe: no identity means no rows
			return db.Where("1 = 0")
		}
		if id.CanSeeAll() {
			return db
		}
		return db.Where(column+" = ?", id.UserID)
	}
}

// DateRangeScope filters column to [start, end]. Nil bounds are open.
func DateRangeScope(column string, start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where(column+" >= ?", *start)
		}
		if end != nil {
			db = db.Where(column+" <= ?", *end)
		}
		return db
	}
}

// Paginate validates params and applies its offset and limit
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

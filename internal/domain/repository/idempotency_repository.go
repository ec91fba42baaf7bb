package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
)

// IdempotencyRepository stores responses of retried write requests
type IdempotencyRepository interface {
	// GetByKey returns the stored key for userID, or nil
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Save inserts ikey, replacing an expired entry with the same key
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before the given time
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domainRepo "github.com/feedworks/feedmill-api/internal/domain/repository"
)

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

// Next increments the named counter and returns the new value. The row lock
// taken by UPDATE serializes concurrent callers, so no two orders ever get
// the same number.
func (r *counterRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).
		Raw("UPDATE counters SET value = value + 1 WHERE name = ? RETURNING value", name).
		Scan(&value).Error
	if err != nil {
		return 0, err
	}
	if value == 0 {
		return 0, fmt.Errorf("counter %q not found", name)
	}
	return value, nil
}

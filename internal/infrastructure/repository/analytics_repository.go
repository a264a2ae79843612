package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	domainRepo "github.com/feedworks/feedmill-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountOrdersByStatus(ctx context.Context) ([]domainRepo.StatusCountResult, error) {
	var results []domainRepo.StatusCountResult
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("order_status AS status, COUNT(*) AS count").
		Group("order_status").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) TotalOutstandingDue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("COALESCE(SUM(due_amount), 0)").
		Where("order_status NOT IN ?", []enum.OrderStatus{enum.OrderStatusCancelled}).
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) OrdersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) TopPartyDues(ctx context.Context, limit int) ([]domainRepo.PartyDueResult, error) {
	var results []domainRepo.PartyDueResult
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("orders.party_id AS party_id, parties.company_name AS company_name, SUM(orders.due_amount) AS outstanding").
		Joins("JOIN parties ON parties.id = orders.party_id").
		Where("orders.due_amount > 0 AND orders.order_status NOT IN ?", []enum.OrderStatus{enum.OrderStatusCancelled}).
		Group("orders.party_id, parties.company_name").
		Order("outstanding DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

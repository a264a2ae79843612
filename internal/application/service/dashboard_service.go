package service

import (
	"context"
	"time"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/pkg/apperror"
)

// DashboardService aggregates workflow and receivables figures for the
// back office.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// PartyDue is one row of the top-receivables list, in decimal rupees.
type PartyDue struct {
	PartyID     string  `json:"party_id"`
	CompanyName string  `json:"company_name"`
	Outstanding float64 `json:"outstanding"`
}

// DashboardStats is the aggregate view returned to the back office.
type DashboardStats struct {
	OrdersByStatus      map[string]int64 `json:"orders_by_status"`
	TotalOutstandingDue float64          `json:"total_outstanding_due"`
	OrdersLast30Days    int64            `json:"orders_last_30_days"`
	TopPartyDues        []PartyDue       `json:"top_party_dues"`
}

// GetStats returns the dashboard aggregates. Accountant and Admin only.
func (s *DashboardService) GetStats(ctx context.Context, actor entity.ActorSnapshot) (*DashboardStats, error) {
	if actor.Role != enum.RoleAccountant && actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	statusCounts, err := s.analyticsRepo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int64, len(statusCounts))
	for _, row := range statusCounts {
		byStatus[row.Status.String()] = row.Count
	}

	outstanding, err := s.analyticsRepo.TotalOutstandingDue(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.analyticsRepo.OrdersCreatedSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	topDues, err := s.analyticsRepo.TopPartyDues(ctx, 5)
	if err != nil {
		return nil, err
	}
	dues := make([]PartyDue, len(topDues))
	for i, row := range topDues {
		dues[i] = PartyDue{
			PartyID:     row.PartyID,
			CompanyName: row.CompanyName,
			Outstanding: float64(row.Outstanding) / 100,
		}
	}

	return &DashboardStats{
		OrdersByStatus:      byStatus,
		TotalOutstandingDue: float64(outstanding) / 100,
		OrdersLast30Days:    recent,
		TopPartyDues:        dues,
	}, nil
}

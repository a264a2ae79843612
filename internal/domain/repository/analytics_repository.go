package repository

import (
	"context"
	"time"

	"github.com/feedworks/feedmill-api/internal/domain/enum"
)

// StatusCountResult is the number of orders currently in one status.
type StatusCountResult struct {
	Status enum.OrderStatus
	Count  int64
}

// PartyDueResult is a party's outstanding receivable.
type PartyDueResult struct {
	PartyID     string
	CompanyName string
	Outstanding int64 // paise
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// CountOrdersByStatus returns order counts grouped by workflow status
	CountOrdersByStatus(ctx context.Context) ([]StatusCountResult, error)

	// TotalOutstandingDue returns the sum of unpaid dues across live orders, in paise
	TotalOutstandingDue(ctx context.Context) (int64, error)

	// OrdersCreatedSince counts orders created at or after the given time
	OrdersCreatedSince(ctx context.Context, since time.Time) (int64, error)

	// TopPartyDues returns the parties with the largest outstanding dues
	TopPartyDues(ctx context.Context, limit int) ([]PartyDueResult, error)
}

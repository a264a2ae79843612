package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

// PartyRepository defines the interface for party (customer) data operations
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error)
	Update(ctx context.Context, party *entity.Party) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PartyStatus) error
	List(ctx context.Context, params *PartyFilterParams) ([]entity.Party, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustBalance atomically adds delta (paise, may be negative) to the
	// party's outstanding balance.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error
}

// PartyFilterParams contains filtering parameters for party queries
type PartyFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PartyStatus
	CreatedBy  *uuid.UUID
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	domainRepo "github.com/feedworks/feedmill-api/internal/domain/repository"
)

type partyRepository struct {
	db *gorm.DB
}

// NewPartyRepository creates a new party repository
func NewPartyRepository(db *gorm.DB) domainRepo.PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) Create(ctx context.Context, party *entity.Party) error {
	return r.db.WithContext(ctx).Create(party).Error
}

func (r *partyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	var party entity.Party
	err := r.db.WithContext(ctx).First(&party, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &party, err
}

func (r *partyRepository) Update(ctx context.Context, party *entity.Party) error {
	return r.db.WithContext(ctx).Save(party).Error
}

func (r *partyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PartyStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Party{}).
		Where("id = ?", id).
		Update("party_status", status).Error
}

func (r *partyRepository) List(ctx context.Context, params *domainRepo.PartyFilterParams) ([]entity.Party, int64, error) {
	var parties []entity.Party
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Party{})

	if params.Search != "" {
		query = query.Where("company_name ILIKE ? OR address ILIKE ? OR contact_person_number ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("party_status = ?", *params.Status)
	}

	if params.CreatedBy != nil {
		query = query.Where("created_by = ?", *params.CreatedBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&parties).Error

	return parties, total, err
}

func (r *partyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Party{}, "id = ?", id).Error
}

// AdjustBalance adds delta to the party's balance in a single UPDATE so
// concurrent payments never lose each other's adjustment.
func (r *partyRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).Model(&entity.Party{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/pkg/apperror"
)

// PartyService handles customer account operations. Party approval is its
// own small workflow: a new party starts SentForApproval and only an Admin
// moves it to Approved or Rejected.
type PartyService struct {
	partyRepo repository.PartyRepository
}

// NewPartyService creates a new party service
func NewPartyService(partyRepo repository.PartyRepository) *PartyService {
	return &PartyService{partyRepo: partyRepo}
}

// CreatePartyInput represents the create party input
type CreatePartyInput struct {
	CompanyName         string
	Address             string
	ContactPersonNumber string
	Limit               float64 // rupees, 0 = unlimited
	DiscountPercent     float64
}

// CreateParty registers a new customer pending admin approval.
func (s *PartyService) CreateParty(ctx context.Context, actor entity.ActorSnapshot, input *CreatePartyInput) (*entity.Party, error) {
	if actor.Role != enum.RoleSalesman {
		return nil, apperror.ErrForbidden
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, apperror.NewBadRequestError("Company name is required")
	}
	if input.Limit < 0 {
		return nil, apperror.NewInvalidAmountError("Credit limit cannot be negative")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, apperror.NewInvalidAmountError("Discount percent must be between 0 and 100")
	}

	party := &entity.Party{
		ID:                  uuid.New(),
		CompanyName:         input.CompanyName,
		Address:             input.Address,
		ContactPersonNumber: input.ContactPersonNumber,
		Limit:               toPaise(input.Limit),
		DiscountPercent:     input.DiscountPercent,
		PartyStatus:         enum.PartyStatusSentForApproval,
		CreatedBy:           actor.UserID,
	}
	if err := s.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

// ResolveParty approves or rejects a pending party.
func (s *PartyService) ResolveParty(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID, approve bool) (*entity.Party, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}
	if party.PartyStatus != enum.PartyStatusSentForApproval {
		return nil, apperror.NewUnprocessableError("Party is not awaiting approval")
	}

	status := enum.PartyStatusApproved
	if !approve {
		status = enum.PartyStatusRejected
	}
	if err := s.partyRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	party.PartyStatus = status
	return party, nil
}

// UpdatePartyInput represents the update party input. Nil fields are
// left unchanged; credit terms may only be changed by an Admin.
type UpdatePartyInput struct {
	Address             *string
	ContactPersonNumber *string
	Limit               *float64
	DiscountPercent     *float64
}

// UpdateParty changes a party's contact details and, for admins, its
// credit terms. Company name and balance are never edited directly.
func (s *PartyService) UpdateParty(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID, input *UpdatePartyInput) (*entity.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}

	switch actor.Role {
	case enum.RoleAdmin:
	case enum.RoleSalesman:
		if party.CreatedBy != actor.UserID {
			return nil, apperror.ErrForbidden
		}
		if input.Limit != nil || input.DiscountPercent != nil {
			return nil, apperror.NewForbiddenError("Only an admin can change credit terms")
		}
	default:
		return nil, apperror.ErrForbidden
	}

	if input.Address != nil {
		party.Address = *input.Address
	}
	if input.ContactPersonNumber != nil {
		party.ContactPersonNumber = *input.ContactPersonNumber
	}
	if input.Limit != nil {
		if *input.Limit < 0 {
			return nil, apperror.NewInvalidAmountError("Credit limit cannot be negative")
		}
		party.Limit = toPaise(*input.Limit)
	}
	if input.DiscountPercent != nil {
		if *input.DiscountPercent < 0 || *input.DiscountPercent > 100 {
			return nil, apperror.NewInvalidAmountError("Discount percent must be between 0 and 100")
		}
		party.DiscountPercent = *input.DiscountPercent
	}

	if err := s.partyRepo.Update(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

// GetParty returns a party by id.
func (s *PartyService) GetParty(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}
	return party, nil
}

// ListParties returns a filtered page of parties.
func (s *PartyService) ListParties(ctx context.Context, params *repository.PartyFilterParams) ([]entity.Party, int64, error) {
	return s.partyRepo.List(ctx, params)
}

// DeleteParty soft-deletes a party.
func (s *PartyService) DeleteParty(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID) error {
	if actor.Role != enum.RoleAdmin {
		return apperror.ErrForbidden
	}
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if party == nil {
		return apperror.NewNotFoundError("Party")
	}
	if party.Balance > 0 {
		return apperror.NewUnprocessableError("Party still has an outstanding balance")
	}
	return s.partyRepo.Delete(ctx, id)
}

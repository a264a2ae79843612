package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/pkg/apperror"
	"github.com/feedworks/feedmill-api/pkg/utils"
)

// UserService handles staff account management. Admin only; each user
// carries exactly one workflow role.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     enum.Role
	Phone    *string
}

// CreateUser creates a staff account with a workflow role.
func (s *UserService) CreateUser(ctx context.Context, actor entity.ActorSnapshot, input *CreateUserInput) (*entity.User, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, apperror.NewBadRequestError("Name and email are required")
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewBadRequestError("Password must be at least 8 characters")
	}
	if !input.Role.Valid() {
		return nil, apperror.NewBadRequestError("Unknown role")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError("Email is already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     input.Role,
		Phone:    input.Phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents the update user input
type UpdateUserInput struct {
	Name  *string
	Role  *enum.Role
	Phone *string
}

// UpdateUser changes a staff account's name, role or phone.
func (s *UserService) UpdateUser(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperror.NewBadRequestError("Unknown role")
		}
		user.Role = *input.Role
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns a staff account by id.
func (s *UserService) GetUser(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID) (*entity.User, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers returns a filtered page of staff accounts.
func (s *UserService) ListUsers(ctx context.Context, actor entity.ActorSnapshot, params *repository.UserFilterParams) ([]entity.User, int64, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, 0, apperror.ErrForbidden
	}
	return s.userRepo.List(ctx, params)
}

// DeleteUser removes a staff account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID) error {
	if actor.Role != enum.RoleAdmin {
		return apperror.ErrForbidden
	}
	if actor.UserID == id {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}

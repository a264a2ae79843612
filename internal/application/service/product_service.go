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

// ProductService handles the feed catalog. Price changes never touch
// existing orders; line items carry their own frozen copy.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents the create/update product input
type ProductInput struct {
	Name        string
	Category    string
	Description *string
	Price       float64 // rupees
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.NewBadRequestError("Product name is required")
	}
	if in.Price < 0 {
		return apperror.NewInvalidAmountError("Price cannot be negative")
	}
	return nil
}

// CreateProduct adds a product to the catalog.
func (s *ProductService) CreateProduct(ctx context.Context, actor entity.ActorSnapshot, input *ProductInput) (*entity.Product, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       toPaise(input.Price),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct changes catalog fields, including the current price.
func (s *ProductService) UpdateProduct(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	product.Name = input.Name
	product.Category = input.Category
	product.Description = input.Description
	product.Price = toPaise(input.Price)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a product by id.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns a filtered page of products.
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// DeleteProduct soft-deletes a catalog entry.
func (s *ProductService) DeleteProduct(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID) error {
	if actor.Role != enum.RoleAdmin {
		return apperror.ErrForbidden
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"apteekki/internal/apperror"
	"apteekki/internal/models"
	"apteekki/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProductInput carries the mutable product fields. Pointer types keep
// required numeric and boolean fields distinguishable from their zero
// values, so size 0 or prescriptionRequired=false still validates.
type ProductInput struct {
	Name                 string   `json:"name" validate:"required,min=3"`
	Size                 *float64 `json:"size" validate:"required"`
	Price                *float64 `json:"price" validate:"required"`
	PrescriptionRequired *bool    `json:"prescriptionRequired" validate:"required"`
	Category             string   `json:"category" validate:"required"`
}

// ProductService handles catalog business logic. Reads are open to any
// caller; mutation is gated at the route level to admin users.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, apperror.NewInternal("failed to list products", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound("product not found", err)
		}
		return nil, apperror.NewInternal("failed to get product", err)
	}
	return product, nil
}

// CreateProduct validates the input and inserts a new product.
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:                 input.Name,
		Size:                 *input.Size,
		Price:                *input.Price,
		PrescriptionRequired: *input.PrescriptionRequired,
		Category:             input.Category,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, apperror.NewInternal("failed to create product", err)
	}
	return product, nil
}

// UpdateProduct replaces the full record identified by id.
func (s *ProductService) UpdateProduct(id string, input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:                   id,
		Name:                 input.Name,
		Size:                 *input.Size,
		Price:                *input.Price,
		PrescriptionRequired: *input.PrescriptionRequired,
		Category:             input.Category,
	}
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound("product not found", err)
		}
		return nil, apperror.NewInternal("failed to update product", err)
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID. A missing id is reported as
// not found rather than silently succeeding.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NewNotFound("product not found", err)
		}
		return apperror.NewInternal("failed to delete product", err)
	}
	return nil
}

// validateInput runs struct validation and reports the offending fields.
func (s *ProductService) validateInput(input ProductInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.NewInternal("failed to validate product", err)
	}
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return apperror.NewValidation(fmt.Sprintf("invalid product fields: %s", strings.Join(fields, ", ")), err)
}

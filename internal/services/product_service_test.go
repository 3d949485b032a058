package services_test

import (
	"testing"

	"apteekki/internal/apperror"
	"apteekki/internal/models"
	"apteekki/internal/repositories"
	"apteekki/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func productInput(name string, size, price float64, prescription bool, category string) services.ProductInput {
	return services.ProductInput{
		Name:                 name,
		Size:                 &size,
		Price:                &price,
		PrescriptionRequired: &prescription,
		Category:             category,
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "1", Name: "TestMedicine1", Size: 60, Price: 4.90, PrescriptionRequired: true, Category: "Vitamin"},
		{ID: "2", Name: "TestMedicine2", Size: 40, Price: 8.90, PrescriptionRequired: false, Category: "Lotion"},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: "1", Name: "TestMedicine1", Size: 60, Price: 4.90, PrescriptionRequired: true, Category: "Vitamin"}

	// Successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Product not found
	mockRepo.On("GetByID", "99").Return(nil, repositories.ErrNotFound).Once()
	product, err = service.GetProductByID("99")
	assert.Nil(t, product)
	assertKind(t, err, apperror.NotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Successful creation
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	product, err := service.CreateProduct(productInput("Burana", 30, 6.50, false, "Painkiller"))
	assert.NoError(t, err)
	assert.Equal(t, "Burana", product.Name)
	assert.Equal(t, 6.50, product.Price)
	mockRepo.AssertExpectations(t)

	// Zero-valued required fields are still valid values
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	product, err = service.CreateProduct(productInput("Sample", 0, 0, false, "Sample"))
	assert.NoError(t, err)
	assert.False(t, product.PrescriptionRequired)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Too-short name
	_, err := service.CreateProduct(productInput("ab", 30, 6.50, false, "Painkiller"))
	assertKind(t, err, apperror.Validation)
	assert.Contains(t, err.Error(), "Name")

	// Missing required fields are listed in the error
	_, err = service.CreateProduct(services.ProductInput{Name: "OnlyName"})
	assertKind(t, err, apperror.Validation)
	assert.Contains(t, err.Error(), "Size")
	assert.Contains(t, err.Error(), "Price")
	assert.Contains(t, err.Error(), "PrescriptionRequired")
	assert.Contains(t, err.Error(), "Category")

	// Nothing reaches the store on validation failure
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Successful full-record replace
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	product, err := service.UpdateProduct("1", productInput("Burana Forte", 30, 8.20, true, "Painkiller"))
	assert.NoError(t, err)
	assert.Equal(t, "1", product.ID)
	assert.Equal(t, "Burana Forte", product.Name)
	mockRepo.AssertExpectations(t)

	// Unknown id
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(repositories.ErrNotFound).Once()
	_, err = service.UpdateProduct("99", productInput("Ghost", 10, 1.00, false, "None"))
	assertKind(t, err, apperror.NotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Deleting a missing product reports not found instead of succeeding
	mockRepo.On("Delete", "99").Return(repositories.ErrNotFound).Once()
	err = service.DeleteProduct("99")
	assertKind(t, err, apperror.NotFound)
	mockRepo.AssertExpectations(t)
}

package repositories_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"apteekki/internal/models"
	"apteekki/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a per-test in-memory SQLite database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func testProduct() *models.Product {
	return &models.Product{
		Name:                 "Aspirin 500mg",
		Size:                 20,
		Price:                4.95,
		PrescriptionRequired: false,
		Category:             "painkillers",
	}
}

func TestProductUpdateUnknownIDIsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	missing := testProduct()
	missing.ID = uuid.New().String()

	err := repo.Update(missing)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	// the failed update must not have inserted a row
	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductUpdateReplacesZeroValues(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	product := testProduct()
	product.PrescriptionRequired = true
	assert.NoError(t, repo.Create(product))

	product.Price = 0
	product.PrescriptionRequired = false
	assert.NoError(t, repo.Update(product))

	stored, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, stored.Price)
	assert.False(t, stored.PrescriptionRequired)
}

func seedOrder(t *testing.T, db *gorm.DB, repo *repositories.GORMOrderRepository) *models.Order {
	t.Helper()

	user := &models.User{ID: uuid.New().String(), Username: "customer", Name: "Customer", Role: models.RoleStandard}
	assert.NoError(t, db.Create(user).Error)

	product := testProduct()
	product.ID = uuid.New().String()
	assert.NoError(t, db.Create(product).Error)

	order := &models.Order{
		Date:   time.Now().UTC(),
		UserID: user.ID,
		Items: []models.OrderItem{
			{Position: 0, ProductID: product.ID},
			{Position: 1, ProductID: product.ID},
		},
	}
	assert.NoError(t, repo.Create(order))
	return order
}

func TestOrderUpdateAfterDeleteIsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := seedOrder(t, db, repo)
	assert.NoError(t, repo.Delete(order.ID))

	order.Delivered = true
	err := repo.Update(order)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	// the failed update must not have resurrected the deleted order
	orders, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderUpdateOnlyTouchesDelivered(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := seedOrder(t, db, repo)

	update := &models.Order{ID: order.ID, Delivered: true, Date: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), UserID: "someone-else"}
	assert.NoError(t, repo.Update(update))

	stored, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.True(t, stored.Delivered)
	assert.WithinDuration(t, order.Date, stored.Date, time.Second)
	assert.Equal(t, order.UserID, stored.UserID)
	assert.Len(t, stored.Items, 2)
}

func TestOrderDeleteRemovesItemRows(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := seedOrder(t, db, repo)
	assert.NoError(t, repo.Delete(order.ID))

	var itemCount int64
	assert.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestOrderDeleteUnknownIDIsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	err := repo.Delete(uuid.New().String())
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

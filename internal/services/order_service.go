package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"apteekki/internal/apperror"
	"apteekki/internal/models"
	"apteekki/internal/repositories"
	"apteekki/pkg/rabbitmq"
)

// OrderUpdateInput carries the mutable order fields for partial updates.
// Only delivered can change after creation; date, user and products are
// fixed.
type OrderUpdateInput struct {
	Delivered *bool `json:"delivered"`
}

// OrderService handles business logic related to orders. User and product
// references are checked at creation time only; later deletions of the
// referenced records are tolerated by reads.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	mqClient    *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, which
// disables event publishing.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		mqClient:    mqClient,
	}
}

// GetAllOrders retrieves all orders with their references resolved.
func (s *OrderService) GetAllOrders() ([]models.OrderView, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, apperror.NewInternal("failed to list orders", err)
	}

	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		view, err := s.render(&orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.OrderView, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound("order not found", err)
		}
		return nil, apperror.NewInternal("failed to get order", err)
	}
	return s.render(order)
}

// CreateOrder creates a new order for the given user and products. Every
// reference must resolve at creation time; nothing is written otherwise.
func (s *OrderService) CreateOrder(userID string, productIDs []string) (*models.OrderView, error) {
	if userID == "" {
		return nil, apperror.NewValidation("user is required", nil)
	}
	if len(productIDs) == 0 {
		return nil, apperror.NewValidation("order must contain at least one product", nil)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewValidation(fmt.Sprintf("user %s does not exist", userID), err)
		}
		return nil, apperror.NewInternal("failed to resolve user", err)
	}

	products := make([]models.Product, 0, len(productIDs))
	items := make([]models.OrderItem, 0, len(productIDs))
	for i, pid := range productIDs {
		product, err := s.productRepo.GetByID(pid)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperror.NewValidation(fmt.Sprintf("product %s does not exist", pid), err)
			}
			return nil, apperror.NewInternal("failed to resolve product", err)
		}
		products = append(products, *product)
		items = append(items, models.OrderItem{Position: i, ProductID: pid})
	}

	order := &models.Order{
		Date:      time.Now(),
		Delivered: false,
		UserID:    user.ID,
		Items:     items,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, apperror.NewInternal("failed to create order", err)
	}

	s.publish("order.created", order)

	return &models.OrderView{
		ID:        order.ID,
		Date:      order.Date,
		Delivered: order.Delivered,
		User:      user,
		Products:  products,
	}, nil
}

// UpdateOrder applies a partial update. The delivered flag is monotonic:
// once true it can never be reset.
func (s *OrderService) UpdateOrder(id string, input OrderUpdateInput) (*models.OrderView, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound("order not found", err)
		}
		return nil, apperror.NewInternal("failed to get order", err)
	}

	justDelivered := false
	if input.Delivered != nil {
		if order.Delivered && !*input.Delivered {
			return nil, apperror.NewConflict("delivered cannot be reverted", nil)
		}
		justDelivered = *input.Delivered && !order.Delivered
		order.Delivered = *input.Delivered
	}

	if err := s.orderRepo.Update(order); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewNotFound("order not found", err)
		}
		return nil, apperror.NewInternal("failed to update order", err)
	}

	if justDelivered {
		s.publish("order.delivered", order)
	}

	return s.render(order)
}

// DeleteOrder deletes an order by its ID.
func (s *OrderService) DeleteOrder(id string) error {
	if _, err := s.orderRepo.GetByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NewNotFound("order not found", err)
		}
		return apperror.NewInternal("failed to get order", err)
	}
	if err := s.orderRepo.Delete(id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return apperror.NewInternal("failed to delete order", err)
	}
	return nil
}

// render resolves an order's references for serialization. A user deleted
// after order creation renders as null, deleted products are dropped.
func (s *OrderService) render(order *models.Order) (*models.OrderView, error) {
	view := &models.OrderView{
		ID:        order.ID,
		Date:      order.Date,
		Delivered: order.Delivered,
		Products:  make([]models.Product, 0, len(order.Items)),
	}

	user, err := s.userRepo.GetByID(order.UserID)
	if err == nil {
		view.User = user
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NewInternal("failed to resolve order user", err)
	}

	for _, item := range order.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, apperror.NewInternal("failed to resolve order product", err)
		}
		view.Products = append(view.Products, *product)
	}
	return view, nil
}

// publish sends an order event if a message queue client is configured.
// Publishing failures are logged, never surfaced to the caller.
func (s *OrderService) publish(event string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"orderID":   order.ID,
		"userID":    order.UserID,
		"delivered": order.Delivered,
	}
	if err := s.mqClient.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, order.ID, err)
	}
}

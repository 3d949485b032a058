package handlers

import (
	"log"

	"apteekki/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Creation
// and single-order reads are open; listing, updating and deleting require
// an authenticated admin.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	orders := router.Group("/orders")
	orders.Get("/", authRequired, adminRequired, h.HandleList)
	orders.Get("/:id", h.HandleGet)
	orders.Post("/", h.HandleCreate)
	orders.Put("/:id", authRequired, adminRequired, h.HandleUpdate)
	orders.Delete("/:id", authRequired, adminRequired, h.HandleDelete)
}

// HandleList retrieves all orders.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGet retrieves a single order by its ID.
func (h *OrderHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// CreateOrderRequest represents the request body for order creation.
type CreateOrderRequest struct {
	User     string   `json:"user" validate:"required"`
	Products []string `json:"products" validate:"required,min=1"`
}

// HandleCreate creates a new order.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user and at least one product are required",
		})
	}

	order, err := h.service.CreateOrder(req.User, req.Products)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdate applies a partial update to an existing order.
func (h *OrderHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input services.OrderUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	order, err := h.service.UpdateOrder(id, input)
	if err != nil {
		log.Printf("Error updating order %s: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleDelete deletes an order by its ID.
func (h *OrderHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteOrder(id); err != nil {
		log.Printf("Error deleting order %s: %v", id, err)
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/pizzeria/internal/middleware"
	"github.com/example/pizzeria/internal/services"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	Items         []services.OrderItemInput `json:"items"`
	TotalAmount   float64                   `json:"totalAmount"`
	CustomerName  string                    `json:"customerName"`
	CustomerEmail string                    `json:"customerEmail"`
	PaymentMethod string                    `json:"paymentMethod"`
	DeliveryType  string                    `json:"deliveryType"`
	Address       string                    `json:"address"`
}

// CreateOrder places an order for the authenticated user. The request's
// totalAmount is the item subtotal; the delivery charge is added
// server-side.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.CreateOrder(services.CreateOrderInput{
		Items:         req.Items,
		Subtotal:      req.TotalAmount,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		PaymentMethod: req.PaymentMethod,
		DeliveryType:  req.DeliveryType,
		Address:       req.Address,
		UserID:        userID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListOrders returns all orders for admins, the caller's own otherwise.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.orders.ListOrders(services.Actor{
		UserID:  userID,
		IsAdmin: middleware.IsAdmin(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(orders)
}

// GetOrder returns a single order by ID. Unauthenticated, so customers can
// track orders from a shared link.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	order, err := h.orders.GetOrder(id)
	if err != nil {
		return err
	}

	return c.JSON(order)
}

type updateStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

// UpdateStatus transitions an order to a new status (admin only).
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.UpdateStatus(id, req.OrderStatus, services.Actor{
		UserID:  userID,
		IsAdmin: middleware.IsAdmin(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(order)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/pizzeria/internal/services"
)

// DeliveryHandler exposes delivery-charge estimation.
type DeliveryHandler struct {
	orders *services.OrderService
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(orders *services.OrderService) *DeliveryHandler {
	return &DeliveryHandler{orders: orders}
}

type calculateRequest struct {
	Address string `json:"address"`
}

// Calculate quotes distance and delivery charge for an address.
func (h *DeliveryHandler) Calculate(c *fiber.Ctx) error {
	var req calculateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	quote, err := h.orders.CalculateDelivery(req.Address)
	if err != nil {
		return err
	}

	return c.JSON(quote)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pizzeria/internal/models"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		OrderStatus string `json:"order_status"`
		Count       int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("order_status, count(*) as count").
		Group("order_status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.OrderStatus] = sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var deliveryRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("delivery_type = ?", models.DeliveryTypeDelivery).
		Select("COALESCE(SUM(delivery_charge), 0)").
		Scan(&deliveryRevenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"total_users":      totalUsers,
		"total_orders":     totalOrders,
		"orders_by_status": ordersByStatus,
		"total_revenue":    totalRevenue,
		"delivery_revenue": deliveryRevenue,
	})
}

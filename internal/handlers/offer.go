package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/pizzeria/internal/models"
	"github.com/example/pizzeria/internal/services"
)

// OfferHandler manages promotional offers.
type OfferHandler struct {
	db *gorm.DB
}

// NewOfferHandler constructs OfferHandler.
func NewOfferHandler(db *gorm.DB) *OfferHandler {
	return &OfferHandler{db: db}
}

// ListActiveOffers returns offers that are active and inside their validity
// window.
func (h *OfferHandler) ListActiveOffers(c *fiber.Ctx) error {
	now := time.Now()
	var offers []models.Offer
	if err := h.db.
		Where("is_active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Order("created_at desc").
		Find(&offers).Error; err != nil {
		return err
	}
	return c.JSON(offers)
}

// ListAllOffers returns every offer regardless of validity (admin only).
func (h *OfferHandler) ListAllOffers(c *fiber.Ctx) error {
	var offers []models.Offer
	if err := h.db.Order("created_at desc").Find(&offers).Error; err != nil {
		return err
	}
	return c.JSON(offers)
}

// GetOffer returns a single offer.
func (h *OfferHandler) GetOffer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "offer not found")
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return err
	}
	return c.JSON(offer)
}

type offerRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Discount       *float64 `json:"discount"`
	Code           string   `json:"code"`
	ValidFrom      string   `json:"valid_from"`
	ValidUntil     string   `json:"valid_until"`
	MinOrderAmount *float64 `json:"min_order_amount"`
	Image          string   `json:"image"`
	IsActive       *bool    `json:"is_active"`
}

// CreateOffer adds a promotional offer (admin only).
func (h *OfferHandler) CreateOffer(c *fiber.Ctx) error {
	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title == "" || req.Description == "" || req.Discount == nil ||
		req.Code == "" || req.ValidFrom == "" || req.ValidUntil == "" {
		return fiber.NewError(fiber.StatusBadRequest, "please provide all required fields")
	}

	if *req.Discount < 0 || *req.Discount > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "discount must be a number between 0 and 100")
	}

	validFrom, validUntil, err := parseOfferDates(req.ValidFrom, req.ValidUntil)
	if err != nil {
		return err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := h.ensureUniqueCode(code, uuid.Nil); err != nil {
		return err
	}

	offer := models.Offer{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Discount:    *req.Discount,
		Code:        code,
		ValidFrom:   validFrom,
		ValidUntil:  validUntil,
		Image:       req.Image,
		IsActive:    true,
	}
	if req.MinOrderAmount != nil {
		offer.MinOrderAmount = *req.MinOrderAmount
	}

	if err := h.db.Create(&offer).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// UpdateOffer modifies an offer (admin only).
func (h *OfferHandler) UpdateOffer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "offer not found")
	}

	var offer models.Offer
	if err := h.db.First(&offer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return err
	}

	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title != "" {
		offer.Title = req.Title
	}
	if req.Description != "" {
		offer.Description = req.Description
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "discount must be a number between 0 and 100")
		}
		offer.Discount = *req.Discount
	}
	if req.Code != "" {
		code := strings.ToUpper(strings.TrimSpace(req.Code))
		if err := h.ensureUniqueCode(code, offer.ID); err != nil {
			return err
		}
		offer.Code = code
	}
	if req.ValidFrom != "" || req.ValidUntil != "" {
		from := req.ValidFrom
		if from == "" {
			from = offer.ValidFrom.Format(time.RFC3339)
		}
		until := req.ValidUntil
		if until == "" {
			until = offer.ValidUntil.Format(time.RFC3339)
		}
		validFrom, validUntil, err := parseOfferDates(from, until)
		if err != nil {
			return err
		}
		offer.ValidFrom = validFrom
		offer.ValidUntil = validUntil
	}
	if req.MinOrderAmount != nil {
		offer.MinOrderAmount = *req.MinOrderAmount
	}
	if req.Image != "" {
		offer.Image = req.Image
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	if err := h.db.Save(&offer).Error; err != nil {
		return err
	}
	return c.JSON(offer)
}

// DeleteOffer removes an offer (admin only).
func (h *OfferHandler) DeleteOffer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "offer not found")
	}

	result := h.db.Delete(&models.Offer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "offer not found")
	}

	return c.JSON(fiber.Map{"message": "offer deleted"})
}

func (h *OfferHandler) ensureUniqueCode(code string, excludeID uuid.UUID) error {
	query := h.db.Model(&models.Offer{}).Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &services.ConflictError{Msg: "offer code already exists"}
	}
	return nil
}

func parseOfferDates(from, until string) (time.Time, time.Time, error) {
	validFrom, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date format")
	}

	validUntil, err := time.Parse(time.RFC3339, until)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date format")
	}

	if !validUntil.After(validFrom) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "valid until date must be after valid from date")
	}

	return validFrom, validUntil, nil
}

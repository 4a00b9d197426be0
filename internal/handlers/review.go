package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pizzeria/internal/middleware"
	"github.com/example/pizzeria/internal/models"
)

// ReviewHandler manages customer reviews.
type ReviewHandler struct {
	db *gorm.DB
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// ListReviews returns all reviews, newest first.
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if err := h.db.Order("created_at desc").Find(&reviews).Error; err != nil {
		return err
	}
	return c.JSON(reviews)
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview records a review for the authenticated user. The user's
// name is captured on the review itself.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating == 0 || req.Comment == "" {
		return fiber.NewError(fiber.StatusBadRequest, "please provide rating and comment")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	review := models.Review{
		UserID:   userID,
		UserName: user.Name,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

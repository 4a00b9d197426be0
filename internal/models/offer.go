package models

import "time"

// Offer is a promotional discount code with a validity window.
type Offer struct {
	BaseModel
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Discount       float64   `json:"discount"`
	Code           string    `gorm:"uniqueIndex" json:"code"`
	ValidFrom      time.Time `json:"valid_from"`
	ValidUntil     time.Time `json:"valid_until"`
	MinOrderAmount float64   `json:"min_order_amount"`
	Image          string    `json:"image"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
}

package models

import "github.com/google/uuid"

// Review is customer feedback. UserName is captured at creation so the
// review stays attributed even if the account is renamed.
type Review struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	UserName string    `json:"user_name"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
}

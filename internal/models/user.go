package models

// User is a registered customer or admin account.
type User struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

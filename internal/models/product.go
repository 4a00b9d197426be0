package models

// Product is a catalog entry. The image field holds an object-storage URL;
// upload itself happens outside this service.
type Product struct {
	BaseModel
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `gorm:"index" json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Featured    bool    `json:"featured"`
}

package domain

import "time"

type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SellerID      uint      `gorm:"column:seller_id;index;not null" json:"seller_id"`
	Name          string    `gorm:"column:name;size:128;not null" json:"name"`
	Breed         string    `gorm:"column:breed;size:128" json:"breed"`
	Description   string    `gorm:"column:description;size:1000" json:"description"`
	Price         float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	Quantity      int       `gorm:"column:quantity;default:0" json:"quantity"`
	ImageURL      string    `gorm:"column:image_url;size:256" json:"image_url"`
	PlantAgeDays  int       `gorm:"column:plant_age_days" json:"plant_age_days"`
	AvailableDays int       `gorm:"column:available_days" json:"available_days"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

package domain

import "time"

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `gorm:"not null" json:"price"`
	Discount    float64   `json:"discount"`
	Stock       int       `gorm:"not null" json:"stock"`
	Category    string    `gorm:"not null" json:"category"`
	View        int       `gorm:"not null;default:0" json:"view"`
	Like        int       `gorm:"not null;default:0" json:"like"`
	Sell        int       `gorm:"not null;default:0" json:"sell"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Product) TableName() string { return "db_product" }

// DiscountedPrice applies the percentage discount to the list price.
func (p Product) DiscountedPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

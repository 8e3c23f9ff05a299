package model

import (
	"time"
)

type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `json:"price"`
	Obs         string    `json:"obs"` // free-text remark
	ImageID     *uint     `json:"image_id,omitempty"`
	Image       *File     `gorm:"foreignKey:ImageID" json:"image,omitempty"`
	BusinessID  uint      `gorm:"not null;index" json:"business_id"`
	Business    Business  `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Valid       bool      `gorm:"not null" json:"valid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

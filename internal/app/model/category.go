package model

import (
	"time"
)

type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	BusinessID  uint      `gorm:"not null;index" json:"business_id"`
	Valid       bool      `gorm:"not null" json:"valid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

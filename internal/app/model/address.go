package model

import (
	"time"
)

type Address struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Street     string    `gorm:"not null" json:"street"`
	City       string    `gorm:"not null" json:"city"`
	State      string    `gorm:"not null" json:"state"`
	PostalCode string    `gorm:"not null" json:"postal_code"`
	Locality   string    `gorm:"not null" json:"locality"`
	Number     string    `json:"number"` // unit number, optional
	BusinessID *uint     `gorm:"index" json:"business_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}

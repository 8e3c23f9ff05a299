package model

import (
	"time"
)

// Segment is a market-category taxonomy entry (e.g. "Restaurant"), referenced
// by many businesses.
type Segment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Segment) TableName() string {
	return "segments"
}

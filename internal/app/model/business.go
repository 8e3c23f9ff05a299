package model

import (
	"time"

	"gorm.io/gorm"
)

type Business struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	LogoID      uint           `gorm:"not null" json:"logo_id"`
	Logo        File           `gorm:"foreignKey:LogoID" json:"logo"`
	ImageID     *uint          `json:"image_id,omitempty"`
	Image       *File          `gorm:"foreignKey:ImageID" json:"image,omitempty"` // optional cover image
	Payment     string         `json:"payment"`
	Phone       string         `json:"phone"`
	Whatsapp    string         `json:"whatsapp"`
	SegmentID   uint           `gorm:"not null;index" json:"segment_id"`
	Segment     Segment        `gorm:"foreignKey:SegmentID" json:"segment"`
	Valid       bool           `gorm:"not null" json:"valid"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"` // soft removal keeps referential history

	Addresses  []Address  `gorm:"foreignKey:BusinessID" json:"addresses,omitempty"`
	Categories []Category `gorm:"foreignKey:BusinessID" json:"categories,omitempty"`
	Products   []Product  `gorm:"foreignKey:BusinessID" json:"products,omitempty"`
}

func (Business) TableName() string {
	return "businesses"
}

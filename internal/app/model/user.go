package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOwner UserRole = "owner" // business owner
	RoleAdmin UserRole = "admin" // platform administrator
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `json:"last_name"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Phone        string         `json:"phone"`
	Valid        bool           `gorm:"default:true" json:"valid"`
	Role         UserRole       `gorm:"type:varchar(20);default:'owner'" json:"role"`
	AvatarID     *uint          `json:"avatar_id,omitempty"`
	Avatar       *File          `gorm:"foreignKey:AvatarID" json:"avatar,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// A business stays attached to the user that registered it; the join table
	// allows sharing but the services treat businesses as user-owned.
	Businesses []Business `gorm:"many2many:user_businesses;" json:"businesses,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// OwnsBusiness reports whether the given business id is in the user's owned
// collection. Businesses must be preloaded.
func (u *User) OwnsBusiness(businessID uint) bool {
	for _, business := range u.Businesses {
		if business.ID == businessID {
			return true
		}
	}
	return false
}

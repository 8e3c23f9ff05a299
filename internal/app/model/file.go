package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

var fileBaseURL string

// SetFileBaseURL sets the public prefix used to derive File.URL on load
func SetFileBaseURL(baseURL string) {
	fileBaseURL = strings.TrimRight(baseURL, "/")
}

// File is binary metadata owned by a parent record (business logo or cover
// image, product image, user avatar). The (name, path) pair is unique so
// identical uploads share one row.
type File struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_files_name_path" json:"name"` // original display name
	Path      string    `gorm:"not null;uniqueIndex:idx_files_name_path" json:"path"` // storage key
	URL       string    `gorm:"-" json:"url"`                                         // derived, never stored
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (File) TableName() string {
	return "files"
}

func (f *File) AfterFind(_ *gorm.DB) error {
	f.deriveURL()
	return nil
}

func (f *File) AfterCreate(_ *gorm.DB) error {
	f.deriveURL()
	return nil
}

func (f *File) deriveURL() {
	if fileBaseURL != "" {
		f.URL = fileBaseURL + "/" + f.Path
	}
}

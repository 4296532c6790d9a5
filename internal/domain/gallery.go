package domain

import (
	"fmt"
	"time"
)

// MediaRef is an opaque handle to an externally hosted image or video
type MediaRef string

// GalleryCollection is a product category shown in the gallery
type GalleryCollection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"size:50;uniqueIndex;not null" json:"category"`
	Image     MediaRef  `gorm:"size:255" json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GalleryCollection
func (GalleryCollection) TableName() string {
	return "gallery_collections"
}

func (c GalleryCollection) String() string {
	return c.Category
}

// Testimonial is a customer quote, optionally with a video
type Testimonial struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Video       MediaRef  `gorm:"size:255" json:"video,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Testimonial
func (Testimonial) TableName() string {
	return "testimonials"
}

func (t Testimonial) String() string {
	return fmt.Sprintf("%s - Testimonial", t.Name)
}

// AboutImage is one slide of the about carousel, shown by ascending Order
type AboutImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Image     MediaRef  `gorm:"size:255;not null" json:"image"`
	AltText   string    `gorm:"size:200" json:"alt_text,omitempty"`
	Order     uint      `gorm:"column:sort_order;not null;default:0;index" json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for AboutImage
func (AboutImage) TableName() string {
	return "about_images"
}

func (a AboutImage) String() string {
	return fmt.Sprintf("About Image %d", a.Order)
}

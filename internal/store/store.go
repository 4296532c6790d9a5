package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bibiartisan/internal/domain"
)

// ErrDuplicateCategory is returned when a gallery collection category already exists
var ErrDuplicateCategory = errors.New("gallery collection category already exists")

// InquiryWriter persists inquiries
type InquiryWriter interface {
	CreateInquiry(ctx context.Context, inquiry *domain.Inquiry) error
}

// GalleryReader reads everything the gallery page displays
type GalleryReader interface {
	ListCollections(ctx context.Context) ([]domain.GalleryCollection, error)
	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	ListAboutImages(ctx context.Context) ([]domain.AboutImage, error)
}

// Store is the gorm-backed data store
type Store struct {
	db *gorm.DB
}

// New creates a store over db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var (
	_ InquiryWriter = (*Store)(nil)
	_ GalleryReader = (*Store)(nil)
)

// CreateInquiry inserts a new inquiry and fills in its ID and CreatedAt
func (s *Store) CreateInquiry(ctx context.Context, inquiry *domain.Inquiry) error {
	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("failed to save inquiry: %w", err)
	}
	return nil
}

// ListInquiries returns inquiries newest first
func (s *Store) ListInquiries(ctx context.Context, offset, limit int) ([]domain.Inquiry, error) {
	var inquiries []domain.Inquiry
	err := s.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inquiries: %w", err)
	}
	return inquiries, nil
}

// ListCollections returns all gallery collections in insertion order
func (s *Store) ListCollections(ctx context.Context) ([]domain.GalleryCollection, error) {
	var collections []domain.GalleryCollection
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}
	return collections, nil
}

// ListTestimonials returns all testimonials in insertion order
func (s *Store) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	var testimonials []domain.Testimonial
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&testimonials).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}
	return testimonials, nil
}

// ListAboutImages returns about images by ascending order, ties by insertion
func (s *Store) ListAboutImages(ctx context.Context) ([]domain.AboutImage, error) {
	var images []domain.AboutImage
	if err := s.db.WithContext(ctx).Order("sort_order ASC").Order("id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch about images: %w", err)
	}
	return images, nil
}

// CreateCollection inserts a gallery collection, rejecting duplicate categories
func (s *Store) CreateCollection(ctx context.Context, collection *domain.GalleryCollection) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.GalleryCollection{}).
		Where("category = ?", collection.Category).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check collection category: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, collection.Category)
	}
	if err := s.db.WithContext(ctx).Create(collection).Error; err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// CreateTestimonial inserts a testimonial
func (s *Store) CreateTestimonial(ctx context.Context, testimonial *domain.Testimonial) error {
	if err := s.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return fmt.Errorf("failed to save testimonial: %w", err)
	}
	return nil
}

// CreateAboutImage inserts an about image
func (s *Store) CreateAboutImage(ctx context.Context, image *domain.AboutImage) error {
	if image.Image == "" {
		return errors.New("about image requires an image reference")
	}
	if err := s.db.WithContext(ctx).Create(image).Error; err != nil {
		return fmt.Errorf("failed to save about image: %w", err)
	}
	return nil
}

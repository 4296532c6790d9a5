package services

import (
	"context"

	"go.uber.org/zap"

	"bibiartisan/internal/domain"
	"bibiartisan/internal/media"
	"bibiartisan/internal/store"
)

// AboutValues are the fixed labels shown in the about section
var AboutValues = []string{"Quality", "Craftsmanship", "Elegance"}

// CollectionView is a gallery collection with its image URL resolved
type CollectionView struct {
	ID       uint   `json:"id"`
	Category string `json:"category"`
	ImageURL string `json:"image_url,omitempty"`
}

// TestimonialView is a testimonial with its video URL resolved
type TestimonialView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

// AboutImageView is an about carousel slide with its image URL resolved
type AboutImageView struct {
	ID       uint   `json:"id"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text,omitempty"`
	Order    uint   `json:"order"`
}

// PageContext is everything the site page displays
type PageContext struct {
	Collections  []CollectionView  `json:"collections"`
	Testimonials []TestimonialView `json:"testimonials"`
	AboutImages  []AboutImageView  `json:"about_images"`
	AboutValues  []string          `json:"about_values"`
	Messages     []domain.Message  `json:"messages"`
}

// GalleryService reads the gallery for display
type GalleryService struct {
	store    store.GalleryReader
	resolver media.Resolver
	log      *zap.Logger
}

// NewGalleryService creates a new gallery service
func NewGalleryService(s store.GalleryReader, resolver media.Resolver, log *zap.Logger) *GalleryService {
	return &GalleryService{
		store:    s,
		resolver: resolver,
		log:      log.Named("gallery"),
	}
}

// RenderContext loads collections, testimonials and about images.
// It is used for the plain page view and for every rejected submission.
func (s *GalleryService) RenderContext(ctx context.Context) (*PageContext, error) {
	collections, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	testimonials, err := s.store.ListTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	aboutImages, err := s.store.ListAboutImages(ctx)
	if err != nil {
		return nil, err
	}

	page := &PageContext{
		Collections:  make([]CollectionView, 0, len(collections)),
		Testimonials: make([]TestimonialView, 0, len(testimonials)),
		AboutImages:  make([]AboutImageView, 0, len(aboutImages)),
		AboutValues:  append([]string(nil), AboutValues...),
		Messages:     []domain.Message{},
	}

	for _, c := range collections {
		page.Collections = append(page.Collections, CollectionView{
			ID:       c.ID,
			Category: c.Category,
			ImageURL: s.resolve(ctx, c.Image, media.KindImage),
		})
	}
	for _, t := range testimonials {
		page.Testimonials = append(page.Testimonials, TestimonialView{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			VideoURL:    s.resolve(ctx, t.Video, media.KindVideo),
		})
	}
	for _, a := range aboutImages {
		page.AboutImages = append(page.AboutImages, AboutImageView{
			ID:       a.ID,
			ImageURL: s.resolve(ctx, a.Image, media.KindImage),
			AltText:  a.AltText,
			Order:    a.Order,
		})
	}

	return page, nil
}

// resolve never fails the page; an unresolvable asset renders without a URL
func (s *GalleryService) resolve(ctx context.Context, ref domain.MediaRef, kind media.Kind) string {
	url, err := s.resolver.Resolve(ctx, ref, kind)
	if err != nil {
		s.log.Warn("Failed to resolve media reference", zap.String("ref", string(ref)), zap.String("kind", string(kind)), zap.Error(err))
		return ""
	}
	return url
}

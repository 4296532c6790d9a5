package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bibiartisan/internal/domain"
	"bibiartisan/internal/media"
)

type fakeGalleryReader struct {
	collections  []domain.GalleryCollection
	testimonials []domain.Testimonial
	aboutImages  []domain.AboutImage
	err          error
}

func (f *fakeGalleryReader) ListCollections(ctx context.Context) ([]domain.GalleryCollection, error) {
	return f.collections, f.err
}

func (f *fakeGalleryReader) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return f.testimonials, nil
}

func (f *fakeGalleryReader) ListAboutImages(ctx context.Context) ([]domain.AboutImage, error) {
	return f.aboutImages, nil
}

type failingResolver struct{}

func (failingResolver) Resolve(ctx context.Context, ref domain.MediaRef, kind media.Kind) (string, error) {
	return "", errors.New("presign failed")
}

func TestRenderContextEmptyStore(t *testing.T) {
	svc := NewGalleryService(&fakeGalleryReader{}, media.NewCloudinaryResolver("demo"), zap.NewNop())

	page, err := svc.RenderContext(context.Background())
	require.NoError(t, err)

	assert.Empty(t, page.Collections)
	assert.Empty(t, page.Testimonials)
	assert.Empty(t, page.AboutImages)
	assert.Equal(t, []string{"Quality", "Craftsmanship", "Elegance"}, page.AboutValues)
	assert.NotNil(t, page.Collections)
	assert.NotNil(t, page.Messages)
}

func TestRenderContextResolvesMedia(t *testing.T) {
	reader := &fakeGalleryReader{
		collections: []domain.GalleryCollection{
			{ID: 1, Category: "Bridal", Image: "gallery/bridal.jpg"},
			{ID: 2, Category: "Casual"},
		},
		testimonials: []domain.Testimonial{
			{ID: 1, Name: "Amaka", Description: "Loved it", Video: "testimonials/amaka.mp4"},
		},
		aboutImages: []domain.AboutImage{
			{ID: 4, Image: "about/a.jpg", AltText: "Atelier", Order: 0},
			{ID: 2, Image: "https://cdn.example.com/b.jpg", Order: 1},
		},
	}
	svc := NewGalleryService(reader, media.NewCloudinaryResolver("demo"), zap.NewNop())

	page, err := svc.RenderContext(context.Background())
	require.NoError(t, err)

	require.Len(t, page.Collections, 2)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/gallery/bridal.jpg", page.Collections[0].ImageURL)
	assert.Equal(t, "", page.Collections[1].ImageURL)

	require.Len(t, page.Testimonials, 1)
	assert.Equal(t, "https://res.cloudinary.com/demo/video/upload/testimonials/amaka.mp4", page.Testimonials[0].VideoURL)

	require.Len(t, page.AboutImages, 2)
	assert.Equal(t, uint(4), page.AboutImages[0].ID)
	assert.Equal(t, "Atelier", page.AboutImages[0].AltText)
	assert.Equal(t, "https://cdn.example.com/b.jpg", page.AboutImages[1].ImageURL)
}

func TestRenderContextToleratesResolverFailure(t *testing.T) {
	reader := &fakeGalleryReader{
		collections: []domain.GalleryCollection{{ID: 1, Category: "Bridal", Image: "gallery/bridal.jpg"}},
	}
	svc := NewGalleryService(reader, failingResolver{}, zap.NewNop())

	page, err := svc.RenderContext(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Collections, 1)
	assert.Equal(t, "Bridal", page.Collections[0].Category)
	assert.Empty(t, page.Collections[0].ImageURL)
}

func TestRenderContextPropagatesStoreError(t *testing.T) {
	svc := NewGalleryService(&fakeGalleryReader{err: errors.New("no such table")}, media.NewCloudinaryResolver("demo"), zap.NewNop())

	page, err := svc.RenderContext(context.Background())
	assert.Error(t, err)
	assert.Nil(t, page)
}

func TestRenderContextDoesNotShareAboutValues(t *testing.T) {
	svc := NewGalleryService(&fakeGalleryReader{}, media.NewCloudinaryResolver("demo"), zap.NewNop())

	page, err := svc.RenderContext(context.Background())
	require.NoError(t, err)
	page.AboutValues[0] = "changed"

	assert.Equal(t, "Quality", AboutValues[0])
}

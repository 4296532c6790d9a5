package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bibiartisan/internal/config"
	"bibiartisan/internal/database"
	"bibiartisan/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	db, err := database.Open(&config.DatabaseConfig{URL: "sqlite:///" + path}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return New(db)
}

func TestCreateInquiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inquiry := &domain.Inquiry{
		Name:        "Jo",
		Phone:       "555-1234",
		RequestType: domain.RequestConsultation,
		Message:     "Need a dress",
	}
	require.NoError(t, s.CreateInquiry(ctx, inquiry))
	assert.NotZero(t, inquiry.ID)
	assert.False(t, inquiry.CreatedAt.IsZero())

	inquiries, err := s.ListInquiries(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "Jo", inquiries[0].Name)
	assert.Equal(t, "", inquiries[0].Email)
	assert.Equal(t, "555-1234", inquiries[0].Phone)
	assert.Equal(t, domain.RequestConsultation, inquiries[0].RequestType)
	assert.Equal(t, "Need a dress", inquiries[0].Message)
}

func TestCreateInquiryDoesNotDeduplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, s.CreateInquiry(ctx, &domain.Inquiry{
			Name:        "Jo",
			Email:       "jo@example.com",
			RequestType: domain.RequestCustom,
			Message:     "Same message",
		}))
	}

	inquiries, err := s.ListInquiries(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, inquiries, 2)
	assert.NotEqual(t, inquiries[0].ID, inquiries[1].ID)
}

func TestListAboutImagesOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, img := range []domain.AboutImage{
		{Image: "about/b", Order: 2},
		{Image: "about/a", Order: 0},
		{Image: "about/c", Order: 2},
		{Image: "about/d", Order: 1},
	} {
		img := img
		require.NoError(t, s.CreateAboutImage(ctx, &img))
	}

	images, err := s.ListAboutImages(ctx)
	require.NoError(t, err)

	var refs []domain.MediaRef
	for _, img := range images {
		refs = append(refs, img.Image)
	}
	assert.Equal(t, []domain.MediaRef{"about/a", "about/d", "about/b", "about/c"}, refs)
}

func TestCreateAboutImageRequiresImage(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.CreateAboutImage(context.Background(), &domain.AboutImage{AltText: "empty"}))
}

func TestCreateCollectionRejectsDuplicateCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateCollection(ctx, &domain.GalleryCollection{Category: "Bridal", Image: "gallery/bridal"}))
	err := s.CreateCollection(ctx, &domain.GalleryCollection{Category: "Bridal"})
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	collections, err := s.ListCollections(ctx)
	require.NoError(t, err)
	assert.Len(t, collections, 1)
}

func TestListTestimonials(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTestimonial(ctx, &domain.Testimonial{Name: "Ada", Description: "Lovely fit"}))
	require.NoError(t, s.CreateTestimonial(ctx, &domain.Testimonial{Name: "Bola", Video: "testimonials/bola"}))

	testimonials, err := s.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, testimonials, 2)
	assert.Equal(t, "Ada", testimonials[0].Name)
	assert.Equal(t, domain.MediaRef("testimonials/bola"), testimonials[1].Video)
}

func TestCreateInquiryPropagatesDatabaseError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "inquiries"`).WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	err = New(db).CreateInquiry(context.Background(), &domain.Inquiry{
		Name:        "Jo",
		Email:       "jo@example.com",
		RequestType: domain.RequestCustom,
		Message:     "Hello",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

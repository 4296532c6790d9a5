package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"bibiartisan/internal/config"
	"bibiartisan/internal/database"
	"bibiartisan/internal/domain"
	"bibiartisan/internal/logging"
	"bibiartisan/internal/store"
)

// fixture is the JSON layout of a gallery seed file
type fixture struct {
	Collections  []domain.GalleryCollection `json:"collections"`
	Testimonials []domain.Testimonial       `json:"testimonials"`
	AboutImages  []domain.AboutImage        `json:"about_images"`
}

type report struct {
	Collections       int
	SkippedDuplicates int
	Testimonials      int
	AboutImages       int
}

func main() {
	path := flag.String("file", "fixtures/gallery.json", "gallery fixture to load")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, "console", "bibiartisan-seed")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	fx, err := loadFixture(*path)
	if err != nil {
		logger.Fatal("Failed to read fixture", zap.String("file", *path), zap.Error(err))
	}

	db, err := database.Open(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close(db)

	r, err := seed(context.Background(), store.New(db), fx, logger)
	if err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	fmt.Printf("Seeded %d collections (%d duplicates skipped), %d testimonials, %d about images\n",
		r.Collections, r.SkippedDuplicates, r.Testimonials, r.AboutImages)
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &fx, nil
}

// seed inserts fx. Collections whose category already exists are skipped.
func seed(ctx context.Context, st *store.Store, fx *fixture, log *zap.Logger) (*report, error) {
	r := &report{}

	for i := range fx.Collections {
		c := fx.Collections[i]
		c.ID = 0
		err := st.CreateCollection(ctx, &c)
		if errors.Is(err, store.ErrDuplicateCategory) {
			log.Info("Skipping existing collection", zap.String("category", c.Category))
			r.SkippedDuplicates++
			continue
		}
		if err != nil {
			return r, err
		}
		r.Collections++
	}

	for i := range fx.Testimonials {
		t := fx.Testimonials[i]
		t.ID = 0
		if err := st.CreateTestimonial(ctx, &t); err != nil {
			return r, err
		}
		r.Testimonials++
	}

	for i := range fx.AboutImages {
		a := fx.AboutImages[i]
		a.ID = 0
		if err := st.CreateAboutImage(ctx, &a); err != nil {
			return r, err
		}
		r.AboutImages++
	}

	return r, nil
}

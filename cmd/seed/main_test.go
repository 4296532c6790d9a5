package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bibiartisan/internal/config"
	"bibiartisan/internal/database"
	"bibiartisan/internal/store"
)

func TestLoadFixture(t *testing.T) {
	fx, err := loadFixture(filepath.Join("..", "..", "fixtures", "gallery.json"))
	require.NoError(t, err)
	assert.Len(t, fx.Collections, 3)
	assert.Len(t, fx.Testimonials, 2)
	assert.Len(t, fx.AboutImages, 2)
	assert.Equal(t, "The studio", fx.AboutImages[0].AltText)
}

func TestLoadFixtureInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := loadFixture(path)
	assert.Error(t, err)
}

func TestSeedSkipsDuplicateCategories(t *testing.T) {
	db, err := database.Open(&config.DatabaseConfig{URL: "sqlite:///" + filepath.Join(t.TempDir(), "seed.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	st := store.New(db)
	ctx := context.Background()

	fx, err := loadFixture(filepath.Join("..", "..", "fixtures", "gallery.json"))
	require.NoError(t, err)

	first, err := seed(ctx, st, fx, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, &report{Collections: 3, Testimonials: 2, AboutImages: 2}, first)

	second, err := seed(ctx, st, fx, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Collections)
	assert.Equal(t, 3, second.SkippedDuplicates)

	collections, err := st.ListCollections(ctx)
	require.NoError(t, err)
	assert.Len(t, collections, 3)
}

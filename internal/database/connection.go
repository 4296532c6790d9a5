package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"bibiartisan/internal/config"
	"bibiartisan/internal/domain"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Open connects to the configured database, configures pooling and migrates the models
func Open(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if cfg.IsPostgres() {
		log.Info("Connecting to PostgreSQL database")
		dialector = postgres.Open(cfg.PostgresDSN())
	} else {
		dbPath := cfg.SQLitePath()
		log.Info("Connecting to SQLite database", zap.String("path", dbPath))
		sqlDB, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		dialector = sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        dbPath,
			Conn:       sqlDB,
		}
	}

	// Never log SQL: queries carry submitter contact details
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.IsPostgres() {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
		sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
		log.Info("Connection pool configured", zap.Int("max_open", maxOpenConns), zap.Int("max_idle", maxIdleConns))
	} else {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err := HealthCheck(context.Background(), db); err != nil {
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	log.Info("Running database migrations")
	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("Database connected and migrated")
	return db, nil
}

// Migrate creates or updates the tables for every model
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Inquiry{},
		&domain.GalleryCollection{},
		&domain.Testimonial{},
		&domain.AboutImage{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// HealthCheck pings the database
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

// Stats returns database connection statistics
func Stats(db *gorm.DB) (*sql.DBStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &stats, nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package database

import (
	"fmt"

	"assetsnapshot/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database operations against the single-file sqlite store.
type Manager struct {
	db   *gorm.DB
	path string
}

// NewManager opens (or creates) the sqlite database at the given path.
func NewManager(path string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("%s?_foreign_keys=on", path)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// sqlite supports one writer; keep the pool at a single connection so
	// concurrent requests serialize instead of hitting SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &Manager{db: db, path: path}, nil
}

// Migrate brings the schema up to date. The legacy single-account-per-bank
// layout is rewritten first, then versioned SQL migrations are applied.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	if err := m.rewriteLegacySchema(); err != nil {
		return fmt.Errorf("legacy schema rewrite failed: %w", err)
	}

	mig, err := migrate.New("file://migrations", "sqlite3://"+m.path)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

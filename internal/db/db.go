package db

import (
	"errors"
	"fmt"
	"os"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the sqlite3 driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nmezel/stockledger/internal/models"
)

// Connect opens the sqlite database at path with foreign keys enforced.
func Connect(path string) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is empty, check DATABASE_PATH")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// ConnectAndMigrate opens the database, brings the schema up to date and
// seeds the default color/size rows. With MIGRATIONS=1 the SQL files in
// ./migrations run via golang-migrate; otherwise AutoMigrate keeps the dev
// convenience path.
func ConnectAndMigrate(path string) (*gorm.DB, error) {
	db, err := Connect(path)
	if err != nil {
		return nil, err
	}
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(path); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	for _, table := range []string{"products", "product_variants", "invoices", "invoice_items", "customers"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if err := Seed(db); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates every table of the schema.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Color{}, &models.Size{}, &models.Product{}, &models.Variant{},
		&models.Customer{}, &models.Invoice{}, &models.InvoiceItem{},
	}
	for _, m := range modelsToMigrate {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Seed inserts the default colors and sizes. Re-running it against an
// already-initialized store never duplicates rows.
func Seed(db *gorm.DB) error {
	for _, name := range []string{"Red", "Blue", "Green"} {
		var existing models.Color
		if err := db.Where("name = ?", name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Color{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	for _, name := range []string{"Small", "Medium", "Large"} {
		var existing models.Size
		if err := db.Where("name = ?", name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Size{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func runSQLMigrations(path string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+path)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

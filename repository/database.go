package repository

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vinimoraes/lembretes-api/config"
	"github.com/vinimoraes/lembretes-api/models"
)

// Database manages the database connection. It is passed explicitly to
// whoever needs it; there is no package-level instance.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a PostgreSQL connection and runs the schema migration.
func NewDatabase(cfg *config.Config) (*Database, error) {
	db, err := Open(postgres.Open(cfg.DatabaseDSN()), cfg.Debug)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Database connection established successfully")
	return db, nil
}

// Open connects through the given dialector and migrates the schema.
// Tests use it directly with an in-memory SQLite dialector.
func Open(dialector gorm.Dialector, debug bool) (*Database, error) {
	var logLevel logger.LogLevel
	if debug {
		logLevel = logger.Info
	} else {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Surface unique-constraint violations as gorm.ErrDuplicatedKey
		// instead of driver-specific errors.
		TranslateError: true,
	}

	database, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &Database{DB: database}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// migrate creates/updates the database schema.
func (d *Database) migrate() error {
	return d.DB.AutoMigrate(
		&models.Reminder{},
		&models.Email{},
	)
}

// Close closes the database connection.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks the database health.
func (d *Database) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

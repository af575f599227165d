package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studentportal/internal/config"
	"studentportal/internal/logger"
	"studentportal/internal/model"
)

// InitDB opens the configured database and migrates the students table.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("Connected to %s database", cfg.DBDriver)
	return db, nil
}

// Open connects with the given dialector and runs migrations. Tests pass an
// in-memory sqlite dialector.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err := db.AutoMigrate(&model.Student{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate the database: %w", err)
	}

	return db, nil
}

// OpenInMemory opens a private in-memory sqlite database shared by every
// connection of the returned pool.
func OpenInMemory(name string) (*gorm.DB, error) {
	db, err := Open(sqlite.Open("file:" + name + "?mode=memory&cache=shared"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

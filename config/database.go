package config

import (
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm dialect for DB_DRIVER.
func (c *Config) Dialector() (gorm.Dialector, error) {
	switch c.DBDriver {
	case "mysql":
		dsn := c.DBDSN
		if dsn == "" {
			port := c.DBPort
			if port == "" {
				port = "3306"
			}
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				c.DBUser, c.DBPassword, c.DBHost, port, c.DBName)
		}
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		dsn := c.DBDSN
		if dsn == "" {
			port := c.DBPort
			if port == "" {
				port = "5432"
			}
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				c.DBHost, port, c.DBUser, c.DBPassword, c.DBName)
		}
		return postgres.Open(dsn), nil
	case "sqlite", "sqlite3", "":
		dsn := c.DBDSN
		if dsn == "" {
			dsn = "restaurant.db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

// InitDB opens the configured database. Driver errors are translated so duplicate keys
// surface as gorm.ErrDuplicatedKey.
func InitDB(c *Config) (*gorm.DB, error) {
	dialector, err := c.Dialector()
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if c.LogLevel == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(utils.InfoLogger, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", c.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if db.Dialector.Name() == "sqlite" {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	utils.InfoLogger.Printf("Connected to %s database", db.Dialector.Name())
	return db, nil
}

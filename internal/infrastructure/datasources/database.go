package datasources

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campus-challenge.backend/internal/config"
	pgconn "campus-challenge.backend/internal/infrastructure/datasources/postgres"
	"campus-challenge.backend/internal/infrastructure/models"
)

var newPostgresConn = pgconn.NewConnection

// Open connects to the database selected by cfg. Timestamps written through
// the returned handle come from now so rows carry the civil zone.
func Open(cfg config.DatabaseConfig, now func() time.Time) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        now,
		Logger:         newGormLogger(),
	}

	if cfg.IsSQLite() {
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// sqlite serialises writers; one connection avoids SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get generic database object: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	sqlDB, err := newPostgresConn(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), gormCfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the teams, team_members and configs tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

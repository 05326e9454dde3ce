package infra

import (
	"fmt"

	"github.com/youssef7511/AVCNA/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate over the whole schema. The legacy tables carry no foreign
// keys on purpose: the reference model is denormalized text, kept
// consistent by the sync service, and AutoMigrate must not invent
// constraints the data would violate.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table of the schema. Also used by
// the repository tests against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Medication{},
		&model.Dci{},
		&model.Family{},
		&model.Labo{},
		&model.Forme{},
		&model.Voie{},
		&model.Stock{},
		&model.Interaction{},
	)
}

// TableCounts returns the row count of every table, for the diagnostics
// endpoint.
func TableCounts(db *gorm.DB) (map[string]int64, error) {
	tables := []string{"medic", "dci", "family", "labos", "formes", "voie", "stock", "interact"}
	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		var n int64
		if err := db.Table(table).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

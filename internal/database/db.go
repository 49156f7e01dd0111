package database

import (
	"horti/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Product{},
		&model.Supplier{},
		&model.Store{},
		&model.Order{},
		&model.OrderItem{},
		&model.SupplierAssignment{},
		&model.PlanLine{},
		&model.ReceivedRecord{},
		&model.DistributionLine{},
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to auto-migrate models")
	}

	return db, nil
}

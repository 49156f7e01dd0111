package database

import (
	"horti/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultStores is the fixed set of retail locations.
var DefaultStores = []model.Store{
	{Code: "PIT", Name: "PITUBA"},
	{Code: "VIT", Name: "VITÓRIA"},
	{Code: "VIL", Name: "VILAS"},
	{Code: "API", Name: "APIPEMA"},
	{Code: "RES", Name: "RESTAURANTE"},
	{Code: "PAD", Name: "PADARIA"},
}

// DefaultSuppliers are the recurring produce suppliers known up front; others
// are created lazily when first referenced.
var DefaultSuppliers = []string{
	"erico",
	"irece",
	"elisangela",
	"terra comercio",
	"leo inhame",
	"rubia",
	"solo vivo",
	"bernadete",
}

// SeedReferenceData inserts the default stores and suppliers, ignoring rows
// that already exist. Safe to run on every bootstrap.
func SeedReferenceData(db *gorm.DB) error {
	for _, store := range DefaultStores {
		s := store
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
			return err
		}
	}
	for _, name := range DefaultSuppliers {
		supplier := model.Supplier{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&supplier).Error; err != nil {
			return err
		}
	}
	return nil
}

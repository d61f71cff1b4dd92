package entity

import "gorm.io/gorm"

// AutoMigrate migrates all local tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Order{},
		&OrderLine{},
	)
}

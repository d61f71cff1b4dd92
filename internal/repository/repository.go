package repository

import "gorm.io/gorm"

// Repositories holds the local store repositories.
type Repositories struct {
	Order *OrderRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order: NewOrderRepository(db),
	}
}

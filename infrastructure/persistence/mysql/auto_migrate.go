package mysql

import (
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema. Development convenience
// only; production schemas are managed with migration files.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.ProductPO{},
		&po.CartItemPO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.LoyaltyAccountPO{},
		&po.OutboxEventPO{},
	)
}

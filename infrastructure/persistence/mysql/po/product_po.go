package po

import "time"

// ProductPO product catalog row; Stock is the authoritative on-hand
// quantity and is only ever changed through conditional updates.
type ProductPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:255;not null"`
	UnitPrice int64     `gorm:"not null"`
	Currency  string    `gorm:"size:3;not null"`
	Stock     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName table name.
func (ProductPO) TableName() string {
	return "products"
}

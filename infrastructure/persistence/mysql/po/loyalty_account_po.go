package po

import "time"

// LoyaltyAccountPO accumulated loyalty points per owner.
type LoyaltyAccountPO struct {
	OwnerKind string    `gorm:"primaryKey;size:16"`
	OwnerID   string    `gorm:"primaryKey;size:64"`
	Points    int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName table name.
func (LoyaltyAccountPO) TableName() string {
	return "loyalty_accounts"
}

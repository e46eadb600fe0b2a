package po

import "time"

// CartItemPO cart line keyed by owner. Carts are flat rows rather than
// an aggregate; checkout reads them as a snapshot and clears them after
// the order commits.
//
// UnitPrice is captured when the line is added to the cart. Checkout
// prices from this column, never from the current catalog, so the
// customer pays what was shown when the item went into the cart.
type CartItemPO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	OwnerKind  string    `gorm:"size:16;not null;uniqueIndex:idx_cart_owner_product"`
	OwnerID    string    `gorm:"size:64;not null;uniqueIndex:idx_cart_owner_product"`
	ProductRef string    `gorm:"size:64;not null;uniqueIndex:idx_cart_owner_product"`
	Quantity   int       `gorm:"not null"`
	UnitPrice  int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName table name.
func (CartItemPO) TableName() string {
	return "cart_items"
}


package mysql

import (
	"context"
	"errors"

	"shopcore/domain/order"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CartSource reads cart rows for checkout. The unit price comes from
// the cart row itself, captured when the line was added, so the
// customer pays the price they were shown even if the catalog price
// moved since. Only the display name is joined from the catalog.
type CartSource struct {
	db *gorm.DB
}

// NewCartSource creates the cart source.
func NewCartSource(db *gorm.DB) *CartSource {
	return &CartSource{db: db}
}

func (s *CartSource) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

type cartSnapshotRow struct {
	ProductRef  string
	Quantity    int
	ProductName string
	UnitPrice   int64
}

// ReadSnapshot returns the owner's cart lines with their add-time
// prices. An owner with no cart rows gets an empty snapshot, not an
// error; the checkout flow decides what empty means.
func (s *CartSource) ReadSnapshot(ctx context.Context, owner order.OwnerRef) (order.CartSnapshot, error) {
	var rows []cartSnapshotRow
	err := s.getDB(ctx).
		Table("cart_items").
		Select("cart_items.product_ref, cart_items.quantity, cart_items.unit_price, products.name AS product_name").
		Joins("JOIN products ON products.id = cart_items.product_ref").
		Where("cart_items.owner_kind = ? AND cart_items.owner_id = ?", string(owner.Kind()), owner.ID()).
		Order("cart_items.created_at ASC").
		Scan(&rows).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return order.CartSnapshot{}, err
	}

	lines := make([]order.CartLine, len(rows))
	for i, row := range rows {
		lines[i] = order.CartLine{
			ProductRef:  row.ProductRef,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
		}
	}
	return order.CartSnapshot{Lines: lines}, nil
}

// Clear removes all cart rows for the owner.
func (s *CartSource) Clear(ctx context.Context, owner order.OwnerRef) error {
	return s.getDB(ctx).
		Where("owner_kind = ? AND owner_id = ?", string(owner.Kind()), owner.ID()).
		Delete(&po.CartItemPO{}).Error
}

package mysql

import (
	"context"
	"errors"

	"shopcore/domain/order"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of the order repository.
// GORM association features are not used so aggregate boundaries stay
// explicit; items are managed manually alongside the order row.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db.
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save persists the aggregate. New orders are inserted; existing orders
// are updated with an optimistic lock on the version column, so a stale
// aggregate fails with a concurrent modification error instead of
// silently overwriting a newer write.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o, orderPO, itemPOs)
	}

	// No surrounding unit of work; open a local transaction so the
	// order row and its items stay atomic.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o, orderPO, itemPOs)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order, orderPO *po.OrderPO, itemPOs []po.OrderItemPO) error {
	if o.IsNew() {
		// The stored version is bumped on every save, insert included,
		// so it always matches the aggregate after IncrementVersionForSave.
		orderPO.Version = o.Version() + 1
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
	} else {
		// Versioned update: only succeeds against the version this
		// aggregate was loaded at.
		orderPO.Version = o.Version() + 1
		// Select("*") forces zero-valued columns (cleared flags, nil
		// timestamps) to be written; struct Updates would skip them.
		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), o.Version()).
			Select("*").Omit("id", "created_at").
			Updates(orderPO)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	// Delete then insert keeps item rows exactly in sync with the
	// aggregate without tracking per-line dirty state.
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	o.IncrementVersionForSave()
	return nil
}

// FindByID finds an order by ID.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	// Items are queried manually; Preload would blur the aggregate boundary.
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs), nil
}

// FindByOwner finds all orders for an owner, newest first.
func (r *OrderRepository) FindByOwner(ctx context.Context, owner order.OwnerRef) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	if err := db.Where("owner_kind = ? AND owner_id = ?", string(owner.Kind()), owner.ID()).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		var itemPOs []po.OrderItemPO
		if err := db.Where("order_id = ?", orderPO.ID).Find(&itemPOs).Error; err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(itemPOs)
	}

	return orders, nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)

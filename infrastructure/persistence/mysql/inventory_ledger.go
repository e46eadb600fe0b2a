package mysql

import (
	"context"
	"errors"

	"shopcore/domain/inventory"
	"shopcore/domain/shared"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// InventoryLedger MySQL/GORM implementation of the stock ledger.
// Decrements are a single conditional UPDATE so stock can never go
// negative regardless of how many checkouts race on the same product.
type InventoryLedger struct {
	db *gorm.DB
}

// NewInventoryLedger creates the ledger.
func NewInventoryLedger(db *gorm.DB) *InventoryLedger {
	return &InventoryLedger{db: db}
}

func (l *InventoryLedger) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return l.db.WithContext(ctx)
}

// Available returns the current on-hand quantity for a product.
func (l *InventoryLedger) Available(ctx context.Context, productRef string) (int, error) {
	var productPO po.ProductPO
	result := l.getDB(ctx).Select("stock").First(&productPO, "id = ?", productRef)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, shared.NewNotFoundError("product")
		}
		return 0, result.Error
	}
	return productPO.Stock, nil
}

// TryDecrement atomically reduces stock if enough is available.
//
//	UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?
//
// Zero rows affected means either the product does not exist or stock
// is short; a follow-up read distinguishes the two and reports the
// quantity actually available.
func (l *InventoryLedger) TryDecrement(ctx context.Context, productRef string, quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("product", "quantity", "must be positive")
	}

	result := l.getDB(ctx).Model(&po.ProductPO{}).
		Where("id = ? AND stock >= ?", productRef, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		available, err := l.Available(ctx, productRef)
		if err != nil {
			return err
		}
		return inventory.NewInsufficientStockError(productRef, quantity, available)
	}
	return nil
}

// Increment restores stock, used when a cancelled order returns its
// reserved quantities.
func (l *InventoryLedger) Increment(ctx context.Context, productRef string, quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("product", "quantity", "must be positive")
	}

	result := l.getDB(ctx).Model(&po.ProductPO{}).
		Where("id = ?", productRef).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("product")
	}
	return nil
}

// Compile-time interface implementation check
var _ inventory.Ledger = (*InventoryLedger)(nil)

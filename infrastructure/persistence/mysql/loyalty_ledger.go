package mysql

import (
	"context"

	"shopcore/domain/order"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoyaltyLedger accumulates points per owner using an upsert so the
// first accrual creates the account row.
type LoyaltyLedger struct {
	db *gorm.DB
}

// NewLoyaltyLedger creates the loyalty ledger.
func NewLoyaltyLedger(db *gorm.DB) *LoyaltyLedger {
	return &LoyaltyLedger{db: db}
}

func (l *LoyaltyLedger) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return l.db.WithContext(ctx)
}

// AddPoints adds points to the owner's balance.
func (l *LoyaltyLedger) AddPoints(ctx context.Context, owner order.OwnerRef, points int) error {
	if points <= 0 {
		return nil
	}
	return l.getDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_kind"}, {Name: "owner_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points": gorm.Expr("points + ?", points),
		}),
	}).Create(&po.LoyaltyAccountPO{
		OwnerKind: string(owner.Kind()),
		OwnerID:   owner.ID(),
		Points:    int64(points),
	}).Error
}

package po

import (
	"time"

	"shopcore/domain/order"
	"shopcore/domain/shared"
)

// OrderPO order persistence object. Database mapping only, no business
// logic; GORM associations are deliberately not used so the aggregate
// boundary stays explicit.
type OrderPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	OwnerKind string `gorm:"size:16;not null;index:idx_owner"`
	OwnerID   string `gorm:"size:64;not null;index:idx_owner"`
	Status    string `gorm:"size:20;not null"`

	ItemsTotal  int64  `gorm:"not null"`
	Tax         int64  `gorm:"not null"`
	ShippingFee int64  `gorm:"not null"`
	Discount    int64  `gorm:"not null"`
	GrandTotal  int64  `gorm:"not null"`
	Currency    string `gorm:"size:3;not null"`

	Recipient  string `gorm:"size:255"`
	AddrLine1  string `gorm:"size:255"`
	AddrLine2  string `gorm:"size:255"`
	City       string `gorm:"size:100"`
	PostalCode string `gorm:"size:20"`
	Phone      string `gorm:"size:32"`

	PaymentMethod  string `gorm:"size:32"`
	ShippingMethod string `gorm:"size:32"`

	PaidAt           *time.Time
	PaymentReference string `gorm:"size:128"`

	DeliveredAt    *time.Time
	TrackingNumber string `gorm:"size:64"`
	Carrier        string `gorm:"size:64"`

	StockApplied  bool `gorm:"not null;default:false"`
	PointsAwarded bool `gorm:"not null;default:false"`

	Version   int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName table name.
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO order line persistence object.
type OrderItemPO struct {
	ID           string `gorm:"primaryKey;size:128"`
	OrderID      string `gorm:"size:64;index;not null"`
	ProductRef   string `gorm:"size:64;not null"`
	NameSnapshot string `gorm:"size:255;not null"`
	Quantity     int    `gorm:"not null"`
	UnitPrice    int64  `gorm:"not null"`
	Subtotal     int64  `gorm:"not null"`
	Currency     string `gorm:"size:3;not null"`
}

// TableName table name.
func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts the aggregate to persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	amounts := o.Amounts()
	address := o.Address()
	orderPO := &OrderPO{
		ID:               o.ID(),
		OwnerKind:        string(o.Owner().Kind()),
		OwnerID:          o.Owner().ID(),
		Status:           string(o.Status()),
		ItemsTotal:       amounts.ItemsTotal().Amount(),
		Tax:              amounts.Tax().Amount(),
		ShippingFee:      amounts.ShippingFee().Amount(),
		Discount:         amounts.Discount().Amount(),
		GrandTotal:       amounts.GrandTotal().Amount(),
		Currency:         amounts.GrandTotal().Currency(),
		Recipient:        address.Recipient,
		AddrLine1:        address.Line1,
		AddrLine2:        address.Line2,
		City:             address.City,
		PostalCode:       address.PostalCode,
		Phone:            address.Phone,
		PaymentMethod:    o.PaymentMethod(),
		ShippingMethod:   o.ShippingMethod(),
		PaidAt:           o.PaidAt(),
		PaymentReference: o.PaymentReference(),
		DeliveredAt:      o.DeliveredAt(),
		TrackingNumber:   o.TrackingNumber(),
		Carrier:          o.Carrier(),
		StockApplied:     o.StockApplied(),
		PointsAwarded:    o.PointsAwarded(),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:           item.ID(),
			OrderID:      o.ID(),
			ProductRef:   item.ProductRef(),
			NameSnapshot: item.NameSnapshot(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().Amount(),
			Subtotal:     item.Subtotal().Amount(),
			Currency:     item.UnitPrice().Currency(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain reconstructs the aggregate from persistence objects.
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.LineItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:           itemPO.ID,
			ProductRef:   itemPO.ProductRef,
			NameSnapshot: itemPO.NameSnapshot,
			UnitPrice:    *shared.NewMoney(itemPO.UnitPrice, itemPO.Currency),
			Quantity:     itemPO.Quantity,
			Subtotal:     *shared.NewMoney(itemPO.Subtotal, itemPO.Currency),
		})
	}

	amounts := order.RebuildAmounts(
		*shared.NewMoney(po.ItemsTotal, po.Currency),
		*shared.NewMoney(po.Tax, po.Currency),
		*shared.NewMoney(po.ShippingFee, po.Currency),
		*shared.NewMoney(po.Discount, po.Currency),
		*shared.NewMoney(po.GrandTotal, po.Currency),
	)

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:      po.ID,
		Owner:   order.RebuildOwnerRef(order.OwnerKind(po.OwnerKind), po.OwnerID),
		Items:   items,
		Amounts: amounts,
		Address: order.ShippingAddress{
			Recipient:  po.Recipient,
			Line1:      po.AddrLine1,
			Line2:      po.AddrLine2,
			City:       po.City,
			PostalCode: po.PostalCode,
			Phone:      po.Phone,
		},
		PaymentMethod:    po.PaymentMethod,
		ShippingMethod:   po.ShippingMethod,
		Status:           order.Status(po.Status),
		PaidAt:           po.PaidAt,
		PaymentReference: po.PaymentReference,
		DeliveredAt:      po.DeliveredAt,
		TrackingNumber:   po.TrackingNumber,
		Carrier:          po.Carrier,
		StockApplied:     po.StockApplied,
		PointsAwarded:    po.PointsAwarded,
		Version:          po.Version,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
	})
}

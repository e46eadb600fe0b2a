package order

import (
	"time"

	"shopcore/domain/order"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CheckoutRequest checkout request DTO. Exactly one of CustomerID and
// GuestSessionID must be set.
type CheckoutRequest struct {
	CustomerID     string         `json:"customer_id"`
	GuestSessionID string         `json:"guest_session_id"`
	Address        AddressRequest `json:"address" binding:"required"`
	PaymentMethod  string         `json:"payment_method" binding:"required"`
	ShippingMethod string         `json:"shipping_method" binding:"required"`
	Discount       int64          `json:"discount" binding:"min=0"`
}

// AddressRequest shipping address DTO.
type AddressRequest struct {
	Recipient  string `json:"recipient" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Phone      string `json:"phone"`
}

// ConfirmPaymentRequest payment confirmation DTO.
type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required"`
}

// UpdateStatusRequest status transition DTO. Tracking fields are only
// meaningful when moving to SHIPPED.
type UpdateStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// OrderResponse order response DTO.
type OrderResponse struct {
	ID             string             `json:"id"`
	OwnerKind      string             `json:"owner_kind"`
	OwnerID        string             `json:"owner_id"`
	Items          []LineItemResponse `json:"items"`
	Amounts        AmountsResponse    `json:"amounts"`
	Status         string             `json:"status"`
	PaymentMethod  string             `json:"payment_method"`
	ShippingMethod string             `json:"shipping_method"`
	IsPaid         bool               `json:"is_paid"`
	PaidAt         *time.Time         `json:"paid_at,omitempty"`
	DeliveredAt    *time.Time         `json:"delivered_at,omitempty"`
	TrackingNumber string             `json:"tracking_number,omitempty"`
	Carrier        string             `json:"carrier,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// LineItemResponse order line DTO.
type LineItemResponse struct {
	ProductRef  string        `json:"product_ref"`
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Subtotal    MoneyResponse `json:"subtotal"`
}

// AmountsResponse derived amounts DTO.
type AmountsResponse struct {
	ItemsTotal  MoneyResponse `json:"items_total"`
	Tax         MoneyResponse `json:"tax"`
	ShippingFee MoneyResponse `json:"shipping_fee"`
	Discount    MoneyResponse `json:"discount"`
	GrandTotal  MoneyResponse `json:"grand_total"`
}

// MoneyResponse money DTO, amount in minor units.
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ============================================================================
// Converters
// ============================================================================

func toResponse(o *order.Order) *OrderResponse {
	items := make([]LineItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = LineItemResponse{
			ProductRef:  item.ProductRef(),
			ProductName: item.NameSnapshot(),
			Quantity:    item.Quantity(),
			UnitPrice:   toMoney(item.UnitPrice().Amount(), item.UnitPrice().Currency()),
			Subtotal:    toMoney(item.Subtotal().Amount(), item.Subtotal().Currency()),
		}
	}

	amounts := o.Amounts()
	return &OrderResponse{
		ID:        o.ID(),
		OwnerKind: string(o.Owner().Kind()),
		OwnerID:   o.Owner().ID(),
		Items:     items,
		Amounts: AmountsResponse{
			ItemsTotal:  toMoney(amounts.ItemsTotal().Amount(), amounts.ItemsTotal().Currency()),
			Tax:         toMoney(amounts.Tax().Amount(), amounts.Tax().Currency()),
			ShippingFee: toMoney(amounts.ShippingFee().Amount(), amounts.ShippingFee().Currency()),
			Discount:    toMoney(amounts.Discount().Amount(), amounts.Discount().Currency()),
			GrandTotal:  toMoney(amounts.GrandTotal().Amount(), amounts.GrandTotal().Currency()),
		},
		Status:         string(o.Status()),
		PaymentMethod:  o.PaymentMethod(),
		ShippingMethod: o.ShippingMethod(),
		IsPaid:         o.IsPaid(),
		PaidAt:         o.PaidAt(),
		DeliveredAt:    o.DeliveredAt(),
		TrackingNumber: o.TrackingNumber(),
		Carrier:        o.Carrier(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func toMoney(amount int64, currency string) MoneyResponse {
	return MoneyResponse{Amount: amount, Currency: currency}
}

func (r CheckoutRequest) ownerRef() (order.OwnerRef, error) {
	switch {
	case r.CustomerID != "" && r.GuestSessionID != "":
		return order.OwnerRef{}, order.ErrInvalidOwner
	case r.CustomerID != "":
		return order.NewCustomerRef(r.CustomerID)
	case r.GuestSessionID != "":
		return order.NewGuestRef(r.GuestSessionID)
	default:
		return order.OwnerRef{}, order.ErrInvalidOwner
	}
}

func (r AddressRequest) toDomain() order.ShippingAddress {
	return order.ShippingAddress{
		Recipient:  r.Recipient,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		PostalCode: r.PostalCode,
		Phone:      r.Phone,
	}
}

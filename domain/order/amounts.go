package order

import "shopcore/domain/shared"

// Amounts is the derived money breakdown of an order. The grand total is
// always recomputed here, never supplied by a caller:
//
//	grandTotal = itemsTotal + tax + shippingFee - discount
type Amounts struct {
	itemsTotal  shared.Money
	tax         shared.Money
	shippingFee shared.Money
	discount    shared.Money
	grandTotal  shared.Money
}

// NewAmounts computes and validates the breakdown. All parts must share
// one currency and the resulting grand total must not be negative.
func NewAmounts(itemsTotal, tax, shippingFee, discount shared.Money) (*Amounts, error) {
	sum, err := itemsTotal.Add(tax)
	if err != nil {
		return nil, err
	}
	sum, err = sum.Add(shippingFee)
	if err != nil {
		return nil, err
	}
	grand, err := sum.Subtract(discount)
	if err != nil {
		return nil, err
	}
	if grand.IsNegative() {
		return nil, ErrNegativeGrandTotal
	}

	return &Amounts{
		itemsTotal:  itemsTotal,
		tax:         tax,
		shippingFee: shippingFee,
		discount:    discount,
		grandTotal:  *grand,
	}, nil
}

// RebuildAmounts reconstructs the breakdown from storage without
// revalidation. Repository layer use only.
func RebuildAmounts(itemsTotal, tax, shippingFee, discount, grandTotal shared.Money) Amounts {
	return Amounts{
		itemsTotal:  itemsTotal,
		tax:         tax,
		shippingFee: shippingFee,
		discount:    discount,
		grandTotal:  grandTotal,
	}
}

func (a Amounts) ItemsTotal() shared.Money  { return a.itemsTotal }
func (a Amounts) Tax() shared.Money         { return a.tax }
func (a Amounts) ShippingFee() shared.Money { return a.shippingFee }
func (a Amounts) Discount() shared.Money    { return a.discount }
func (a Amounts) GrandTotal() shared.Money  { return a.grandTotal }

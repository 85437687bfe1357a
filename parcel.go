/*
parcel.go - Fulfillment record for one sale

PURPOSE:
  A Parcel records the lots actually consumed to satisfy one sale plus
  the agreed sale price. Revenue and COGS for the sale are derived from
  it after the fact - there is no separately tracked total.

OWNERSHIP:
  A Parcel owns copies of the consumed fragments, not references back
  into the live lot sequence. Later mutation of live lots cannot
  retroactively change historical COGS.
*/
package seller

import "github.com/shopspring/decimal"

// =============================================================================
// PARCEL - Consumed lots plus agreed sale price
// =============================================================================

// Parcel is immutable once recorded. Its fragment quantities sum exactly
// to the requested sale quantity - a sale is only recorded when it can be
// fully satisfied.
type Parcel struct {
	Item          string
	SaleUnitPrice decimal.Decimal
	Batches       []Batch
}

// Quantity is the total quantity across consumed fragments.
func (p Parcel) Quantity() decimal.Decimal {
	total := decimal.Zero
	for _, b := range p.Batches {
		total = total.Add(b.Quantity)
	}
	return total
}

// COGS is the cost basis of the consumed fragments.
func (p Parcel) COGS() decimal.Decimal {
	total := decimal.Zero
	for _, b := range p.Batches {
		total = total.Add(b.Worth())
	}
	return total
}

// Revenue is what the sale brought in at the agreed unit price.
func (p Parcel) Revenue() decimal.Decimal {
	return p.SaleUnitPrice.Mul(p.Quantity())
}

// Order converts the parcel back into the sale record it fulfilled.
func (p Parcel) Order() Order {
	return Order{Item: p.Item, UnitPrice: p.SaleUnitPrice, Quantity: p.Quantity()}
}

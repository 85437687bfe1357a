/*
Package seller implements a lot-based inventory costing engine.

PURPOSE:
  Goods are purchased in priced lots, sold against those lots under a
  selectable costing method (FIFO, LIFO, weighted-average), and revenue,
  cost of goods sold, margin and net earnings are derived on demand.

KEY CONCEPTS IN THIS FILE (types.go):
  - Batch:   a set of units purchased at the same unit cost
  - Order:   a plain purchase/sale request (item, unit price, quantity)
  - Expense: a recorded cost unrelated to inventory

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Value Semantics: Splitting a Batch produces new values, never aliases.
     A Parcel holds copies of consumed fragments, so later mutation of live
     lots cannot retroactively change historical COGS.
  3. Derived State: Financial metrics are pure folds over purchase,
     fulfillment and expense history - never separately tracked running
     totals that could drift.

USAGE:
  ledger, _ := seller.New(seller.Config{Costing: seller.FIFO})
  ledger.Buy(seller.NewOrder("pen", price, quantity))
  ledger.Sell(seller.NewOrder("pen", price, quantity))
  earned := ledger.Earned()

SEE ALSO:
  - stack.go:     Ordered lot sequence with FIFO/LIFO consumption
  - policy.go:    Costing policy selection
  - inventory.go: Item key -> lot sequence store
  - ledger.go:    Cash-constrained top-level aggregate
*/
package seller

import "github.com/shopspring/decimal"

// =============================================================================
// BATCH - Units of one item purchased at the same unit cost
// =============================================================================

// Batch is the atomic lot of inventory. Quantity is never negative.
type Batch struct {
	UnitCost decimal.Decimal
	Quantity decimal.Decimal
}

func NewBatch(unitCost, quantity decimal.Decimal) Batch {
	return Batch{UnitCost: unitCost, Quantity: quantity}
}

// Worth is the cost basis of the whole batch.
func (b Batch) Worth() decimal.Decimal {
	return b.UnitCost.Mul(b.Quantity)
}

// Split divides the batch at quantity q. Both halves carry the original
// unit cost, so quantity and cost basis are conserved across the split.
// Requires 0 < q < b.Quantity; callers guard the bounds.
func (b Batch) Split(q decimal.Decimal) (taken, remainder Batch) {
	taken = Batch{UnitCost: b.UnitCost, Quantity: q}
	remainder = Batch{UnitCost: b.UnitCost, Quantity: b.Quantity.Sub(q)}
	return taken, remainder
}

// =============================================================================
// ORDER - Plain purchase or sale request
// =============================================================================

// Order is the record consumed by Buy and Sell. Quantity must be strictly
// positive for a real transaction.
type Order struct {
	Item      string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
}

func NewOrder(item string, unitPrice, quantity decimal.Decimal) Order {
	return Order{Item: item, UnitPrice: unitPrice, Quantity: quantity}
}

// Worth is the total value of the order at its unit price.
func (o Order) Worth() decimal.Decimal {
	return o.UnitPrice.Mul(o.Quantity)
}

// Batch converts a purchase order into an inventory lot.
func (o Order) Batch() Batch {
	return Batch{UnitCost: o.UnitPrice, Quantity: o.Quantity}
}

// =============================================================================
// EXPENSE - Amount plus free-text description, purely additive
// =============================================================================

type Expense struct {
	Amount      decimal.Decimal
	Description string
}

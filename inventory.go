/*
inventory.go - Item key to lot sequence store

PURPOSE:
  Maps each item key to its ordered lot sequence and orchestrates the
  add/consume operations and aggregate quantity/worth queries. The active
  CostingPolicy is fixed at construction time.

ATOMICITY:
  Consume verifies availability BEFORE touching any lot. A sale that
  fails with ErrNotInStock or ErrInsufficientStock leaves every lot
  sequence exactly as it was - no partial splits, no partial removals.

ERROR DISTINCTION:
  - ErrNotInStock:        item never purchased, or fully sold out
  - ErrInsufficientStock: item held, but less than requested

SEE ALSO:
  - stack.go:  The per-item lot sequence
  - ledger.go: Cash movement around add/consume
*/
package seller

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INVENTORY - Per-item lot sequences under one costing policy
// =============================================================================

type Inventory struct {
	policy CostingPolicy
	hold   map[string]*Stack
}

func NewInventory(policy CostingPolicy) *Inventory {
	return &Inventory{policy: policy, hold: make(map[string]*Stack)}
}

// Policy returns the active costing policy.
func (inv *Inventory) Policy() CostingPolicy { return inv.policy }

// Add appends a purchase lot for the item, then runs the policy's
// purchase hook (weighted-average collapses lots here). No failure mode.
func (inv *Inventory) Add(item string, b Batch) {
	s, ok := inv.hold[item]
	if !ok {
		s = &Stack{}
		inv.hold[item] = s
	}
	s.Append(b)
	inv.policy.OnPurchase(s)
}

// TotalQuantity is the on-hand quantity for the item, zero for an
// unknown item (does not fail).
func (inv *Inventory) TotalQuantity(item string) decimal.Decimal {
	s, ok := inv.hold[item]
	if !ok {
		return decimal.Zero
	}
	return s.Quantity()
}

// Worth is the total inventory valuation at cost across all items.
func (inv *Inventory) Worth() decimal.Decimal {
	total := decimal.Zero
	for _, s := range inv.hold {
		total = total.Add(s.Worth())
	}
	return total
}

// Lots returns a copy of the item's current lots in purchase order,
// nil for an unknown item.
func (inv *Inventory) Lots(item string) []Batch {
	s, ok := inv.hold[item]
	if !ok {
		return nil
	}
	return s.Batches()
}

// Holdings returns a copy of every item's current lots.
func (inv *Inventory) Holdings() map[string][]Batch {
	out := make(map[string][]Batch, len(inv.hold))
	for item, s := range inv.hold {
		out[item] = s.Batches()
	}
	return out
}

// Consume runs the costing policy against the item's lots and wraps the
// consumed fragments into a Parcel at the given sale price. The fragment
// quantities sum exactly to quantity.
func (inv *Inventory) Consume(item string, quantity, saleUnitPrice decimal.Decimal) (Parcel, error) {
	if !quantity.IsPositive() {
		return Parcel{}, fmt.Errorf("consume %q: %w", item, ErrNonPositiveQuantity)
	}

	s, ok := inv.hold[item]
	if !ok || s.Len() == 0 {
		return Parcel{}, &NotInStockError{Item: item}
	}

	// Availability check before any mutation.
	available := s.Quantity()
	if available.LessThan(quantity) {
		return Parcel{}, &InsufficientStockError{
			Item:      item,
			Available: available,
			Requested: quantity,
		}
	}

	consumed := inv.policy.Consume(s, quantity)
	return Parcel{Item: item, SaleUnitPrice: saleUnitPrice, Batches: consumed}, nil
}

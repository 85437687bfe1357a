/*
stack.go - Ordered lot sequence for a single item

PURPOSE:
  A Stack holds the purchase lots of one item in purchase order and knows
  how to consume them from either end, splitting the boundary lot when a
  request does not line up with lot sizes.

CRITICAL INVARIANTS:
  1. CONSERVATION: TakeFront/TakeBack preserve total quantity and cost
     basis: what is taken plus what remains equals what was there before.
  2. ORDER: FIFO sequences preserve purchase order. Consuming q1 then q2
     touches the same lots, in the same order, as consuming q1+q2 once.
  3. NO ALIASING: Taken fragments are values, not references into the live
     sequence. Mutating the stack afterwards cannot change a fragment.

AVAILABILITY:
  TakeFront/TakeBack do not check availability. Taking more than
  Quantity() drains the stack. Callers (Inventory.Consume) must verify
  availability BEFORE calling so that a failed sale mutates nothing.

SEE ALSO:
  - policy.go:    Chooses which end to take from
  - inventory.go: Availability checks and Parcel assembly
*/
package seller

import "github.com/shopspring/decimal"

// =============================================================================
// STACK - Lot sequence with two-ended consumption
// =============================================================================

type Stack struct {
	batches []Batch
}

// Append adds a purchase lot at the back, preserving purchase order.
func (s *Stack) Append(b Batch) {
	s.batches = append(s.batches, b)
}

// Batches returns a copy of the current lots in purchase order.
func (s *Stack) Batches() []Batch {
	out := make([]Batch, len(s.batches))
	copy(out, s.batches)
	return out
}

func (s *Stack) Len() int {
	return len(s.batches)
}

// Quantity is the total on-hand quantity across all lots.
func (s *Stack) Quantity() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.batches {
		total = total.Add(b.Quantity)
	}
	return total
}

// Worth is the total cost basis across all lots.
func (s *Stack) Worth() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.batches {
		total = total.Add(b.Worth())
	}
	return total
}

// AverageCost is the blended unit cost over all lots, zero when empty.
func (s *Stack) AverageCost() decimal.Decimal {
	q := s.Quantity()
	if q.IsZero() {
		return decimal.Zero
	}
	return s.Worth().Div(q)
}

// =============================================================================
// CONSUMPTION
// =============================================================================

// TakeFront consumes q units walking from the front (oldest lot first).
// A lot larger than the remaining requirement is split: the consumed
// fragment is returned and the remainder stays in place at the front,
// both at the original unit cost.
func (s *Stack) TakeFront(q decimal.Decimal) []Batch {
	var taken []Batch
	remaining := q
	for remaining.IsPositive() && len(s.batches) > 0 {
		current := s.batches[0]
		if current.Quantity.LessThanOrEqual(remaining) {
			taken = append(taken, current)
			remaining = remaining.Sub(current.Quantity)
			s.batches = s.batches[1:]
		} else {
			fragment, rest := current.Split(remaining)
			taken = append(taken, fragment)
			s.batches[0] = rest
			break
		}
	}
	return taken
}

// TakeBack consumes q units walking from the back (newest lot first).
// Same splitting rule as TakeFront.
func (s *Stack) TakeBack(q decimal.Decimal) []Batch {
	var taken []Batch
	remaining := q
	for remaining.IsPositive() && len(s.batches) > 0 {
		last := len(s.batches) - 1
		current := s.batches[last]
		if current.Quantity.LessThanOrEqual(remaining) {
			taken = append(taken, current)
			remaining = remaining.Sub(current.Quantity)
			s.batches = s.batches[:last]
		} else {
			fragment, rest := current.Split(remaining)
			taken = append(taken, fragment)
			s.batches[last] = rest
			break
		}
	}
	return taken
}

// Equalize collapses all lots into a single lot at the blended unit cost
// (total worth / total quantity). No-op when nothing is held.
func (s *Stack) Equalize() {
	q := s.Quantity()
	if q.IsZero() {
		return
	}
	s.batches = []Batch{{UnitCost: s.Worth().Div(q), Quantity: q}}
}

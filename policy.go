/*
policy.go - Costing policy selection

PURPOSE:
  A CostingPolicy decides which lots a sale consumes and what happens to
  the lot sequence after a purchase. The three policies differ only in
  those two hooks; everything else (availability checks, Parcel assembly,
  cash movement) is shared machinery in inventory.go and ledger.go.

POLICIES:
  FIFO:
    - Consume from the front (oldest lots first)
    - Purchases append, nothing else

  LIFO:
    - Consume from the back (newest lots first)
    - Purchases append, nothing else

  WEIGHTED-AVERAGE:
    - Consume from the front; lots are economically identical in cost so
      the order does not matter
    - After EVERY purchase, collapse all lots of the item into a single
      lot at blended_unit_cost = total_worth / total_quantity

EXAMPLE:
  Buy 10 @ 1.00 then 10 @ 2.00 under weighted-average leaves a single
  lot {unit_cost: 1.50, quantity: 20}.

SEE ALSO:
  - stack.go:     TakeFront/TakeBack/Equalize primitives
  - inventory.go: Where the policy is applied
*/
package seller

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COSTING METHOD
// =============================================================================

type CostingMethod string

const (
	FIFO            CostingMethod = "fifo"
	LIFO            CostingMethod = "lifo"
	WeightedAverage CostingMethod = "weighted_average"
)

// =============================================================================
// COSTING POLICY - Strategy selected at construction time
// =============================================================================

type CostingPolicy interface {
	Method() CostingMethod

	// Consume removes q units from the stack and returns the consumed
	// fragments in consumption order. Availability is checked by the
	// caller before any lot is touched.
	Consume(s *Stack, q decimal.Decimal) []Batch

	// OnPurchase runs immediately after a new lot is appended.
	OnPurchase(s *Stack)
}

// PolicyFor returns the policy for a method name. The empty method
// defaults to FIFO.
func PolicyFor(method CostingMethod) (CostingPolicy, error) {
	switch method {
	case FIFO, "":
		return fifoPolicy{}, nil
	case LIFO:
		return lifoPolicy{}, nil
	case WeightedAverage:
		return weightedAveragePolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCostingMethod, method)
	}
}

// =============================================================================
// IMPLEMENTATIONS
// =============================================================================

type fifoPolicy struct{}

func (fifoPolicy) Method() CostingMethod                       { return FIFO }
func (fifoPolicy) Consume(s *Stack, q decimal.Decimal) []Batch { return s.TakeFront(q) }
func (fifoPolicy) OnPurchase(*Stack)                           {}

type lifoPolicy struct{}

func (lifoPolicy) Method() CostingMethod                       { return LIFO }
func (lifoPolicy) Consume(s *Stack, q decimal.Decimal) []Batch { return s.TakeBack(q) }
func (lifoPolicy) OnPurchase(*Stack)                           {}

type weightedAveragePolicy struct{}

func (weightedAveragePolicy) Method() CostingMethod { return WeightedAverage }

func (weightedAveragePolicy) Consume(s *Stack, q decimal.Decimal) []Batch {
	return s.TakeFront(q)
}

func (weightedAveragePolicy) OnPurchase(s *Stack) {
	s.Equalize()
}

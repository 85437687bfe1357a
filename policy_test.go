package seller_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/epogrebnyak/seller"
)

// =============================================================================
// POLICY SELECTION
// =============================================================================

func TestPolicyFor_KnownMethods(t *testing.T) {
	for _, method := range []seller.CostingMethod{seller.FIFO, seller.LIFO, seller.WeightedAverage} {
		policy, err := seller.PolicyFor(method)
		if err != nil {
			t.Fatalf("PolicyFor(%q): unexpected error %v", method, err)
		}
		if policy.Method() != method {
			t.Errorf("PolicyFor(%q) reports method %q", method, policy.Method())
		}
	}
}

func TestPolicyFor_EmptyDefaultsToFIFO(t *testing.T) {
	policy, err := seller.PolicyFor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy.Method() != seller.FIFO {
		t.Errorf("expected fifo default, got %q", policy.Method())
	}
}

func TestPolicyFor_UnknownMethodFails(t *testing.T) {
	_, err := seller.PolicyFor("hifo")
	if !errors.Is(err, seller.ErrUnknownCostingMethod) {
		t.Errorf("expected ErrUnknownCostingMethod, got %v", err)
	}
}

// =============================================================================
// CONSUMPTION ORDER
// =============================================================================

func TestFIFOPolicy_ConsumesOldestFirst(t *testing.T) {
	policy, _ := seller.PolicyFor(seller.FIFO)
	s := newStack(batch("0.55", "100"), batch("0.65", "100"))

	consumed := policy.Consume(s, dec("151"))

	assertBatches(t, []seller.Batch{batch("0.55", "100"), batch("0.65", "51")}, consumed)
	assertBatches(t, []seller.Batch{batch("0.65", "49")}, s.Batches())
}

func TestLIFOPolicy_ConsumesNewestFirst(t *testing.T) {
	policy, _ := seller.PolicyFor(seller.LIFO)
	s := newStack(batch("0.55", "100"), batch("0.65", "100"))

	consumed := policy.Consume(s, dec("151"))

	assertBatches(t, []seller.Batch{batch("0.65", "100"), batch("0.55", "51")}, consumed)
	assertBatches(t, []seller.Batch{batch("0.55", "49")}, s.Batches())
}

func TestFIFOPolicy_SplitBoundaryEquivalence(t *testing.T) {
	// GIVEN: Two identical stacks
	// WHEN: One sells q1 then q2, the other sells q1+q2 at once
	// THEN: Both consume the same lots in the same order, split at the
	//       same boundary, and leave identical remainders

	policy, _ := seller.PolicyFor(seller.FIFO)

	twice := newStack(batch("0.50", "10"), batch("0.60", "10"), batch("0.70", "5"))
	once := newStack(batch("0.50", "10"), batch("0.60", "10"), batch("0.70", "5"))

	first := policy.Consume(twice, dec("12"))
	second := policy.Consume(twice, dec("6"))
	combined := policy.Consume(once, dec("18"))

	sequential := append(append([]seller.Batch{}, first...), second...)

	// The boundary lot is split differently mid-stream (12 cuts the second
	// lot at 2, then 6 consumes another 6 of it), so compare per-cost
	// totals rather than fragment-by-fragment.
	if !totalWorth(sequential).Equal(totalWorth(combined)) {
		t.Errorf("cost basis differs: sequential %v, combined %v",
			totalWorth(sequential), totalWorth(combined))
	}
	if !totalQuantity(sequential).Equal(totalQuantity(combined)) {
		t.Errorf("quantity differs: sequential %v, combined %v",
			totalQuantity(sequential), totalQuantity(combined))
	}
	assertBatches(t, once.Batches(), twice.Batches())
}

// =============================================================================
// WEIGHTED AVERAGE
// =============================================================================

func TestWeightedAverage_PurchaseCollapsesLots(t *testing.T) {
	// GIVEN: 10@1.00 held under weighted-average
	// WHEN: Buying 10@2.00
	// THEN: A single lot 20@1.50 remains

	policy, _ := seller.PolicyFor(seller.WeightedAverage)
	s := newStack()

	s.Append(batch("1.00", "10"))
	policy.OnPurchase(s)
	s.Append(batch("2.00", "10"))
	policy.OnPurchase(s)

	assertBatches(t, []seller.Batch{batch("1.50", "20")}, s.Batches())
}

func TestWeightedAverage_ConvergenceAfterEveryPurchase(t *testing.T) {
	// After any purchase all lots report the identical unit cost equal to
	// total cost basis / total quantity.

	policy, _ := seller.PolicyFor(seller.WeightedAverage)
	s := newStack()

	purchases := []seller.Batch{
		batch("1.00", "10"),
		batch("2.00", "10"),
		batch("4.00", "20"),
	}
	for _, p := range purchases {
		worthBefore := s.Worth().Add(p.Worth())
		qtyBefore := s.Quantity().Add(p.Quantity)

		s.Append(p)
		policy.OnPurchase(s)

		expected := worthBefore.Div(qtyBefore)
		for _, b := range s.Batches() {
			if !b.UnitCost.Equal(expected) {
				t.Errorf("after buying %v: lot cost %v, expected blended %v",
					p, b.UnitCost, expected)
			}
		}
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func totalQuantity(batches []seller.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(b.Quantity)
	}
	return total
}

func totalWorth(batches []seller.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(b.Worth())
	}
	return total
}

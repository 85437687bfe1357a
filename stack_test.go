package seller_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/epogrebnyak/seller"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// Note: dec, batch and order are shared by all tests in this package.

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func batch(unitCost, quantity string) seller.Batch {
	return seller.NewBatch(dec(unitCost), dec(quantity))
}

func order(item, unitPrice, quantity string) seller.Order {
	return seller.NewOrder(item, dec(unitPrice), dec(quantity))
}

func newStack(batches ...seller.Batch) *seller.Stack {
	s := &seller.Stack{}
	for _, b := range batches {
		s.Append(b)
	}
	return s
}

func assertBatches(t *testing.T, want []seller.Batch, got []seller.Batch) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %d batches, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !want[i].UnitCost.Equal(got[i].UnitCost) || !want[i].Quantity.Equal(got[i].Quantity) {
			t.Errorf("batch %d: expected {%v %v}, got {%v %v}",
				i, want[i].UnitCost, want[i].Quantity, got[i].UnitCost, got[i].Quantity)
		}
	}
}

// =============================================================================
// CONSUMPTION TESTS
// =============================================================================

func TestStack_TakeFirst_SplitsBoundaryLot(t *testing.T) {
	// GIVEN: Lots 2@90, 5@120, 3@150 in purchase order
	// WHEN: Taking 5 from the front
	// THEN: First lot consumed whole, second lot split, remainder keeps cost

	s := newStack(batch("90", "2"), batch("120", "5"), batch("150", "3"))

	taken := s.TakeFront(dec("5"))

	assertBatches(t, []seller.Batch{batch("90", "2"), batch("120", "3")}, taken)
	assertBatches(t, []seller.Batch{batch("120", "2"), batch("150", "3")}, s.Batches())
}

func TestStack_TakeLast_SplitsBoundaryLot(t *testing.T) {
	// GIVEN: Lots 2@90, 5@120, 3@150 in purchase order
	// WHEN: Taking 5 from the back
	// THEN: Newest lot consumed whole, middle lot split

	s := newStack(batch("90", "2"), batch("120", "5"), batch("150", "3"))

	taken := s.TakeBack(dec("5"))

	assertBatches(t, []seller.Batch{batch("150", "3"), batch("120", "2")}, taken)
	assertBatches(t, []seller.Batch{batch("90", "2"), batch("120", "3")}, s.Batches())
}

func TestStack_TakeFromBothEnds_StateAndAverage(t *testing.T) {
	// GIVEN: Lots 2@90, 5@120, 3@150
	// WHEN: Taking 3 from the front, then 2 from the back
	// THEN: 4@120 and 1@150 remain; average cost is 126

	s := newStack(batch("90", "2"), batch("120", "5"), batch("150", "3"))
	s.TakeFront(dec("3"))
	s.TakeBack(dec("2"))

	assertBatches(t, []seller.Batch{batch("120", "4"), batch("150", "1")}, s.Batches())

	if !s.Quantity().Equal(dec("5")) {
		t.Errorf("expected quantity 5, got %v", s.Quantity())
	}
	if !s.AverageCost().Equal(dec("126")) {
		t.Errorf("expected average cost 126, got %v", s.AverageCost())
	}
}

func TestStack_Conservation_AcrossSplit(t *testing.T) {
	// GIVEN: Any take that splits a lot
	// THEN: Taken quantity + remaining quantity equals the original total,
	//       and the same holds for cost basis

	s := newStack(batch("0.55", "100"), batch("0.65", "100"))
	originalQty := s.Quantity()
	originalWorth := s.Worth()

	taken := s.TakeFront(dec("151"))

	takenQty, takenWorth := decimal.Zero, decimal.Zero
	for _, b := range taken {
		takenQty = takenQty.Add(b.Quantity)
		takenWorth = takenWorth.Add(b.Worth())
	}

	if !takenQty.Add(s.Quantity()).Equal(originalQty) {
		t.Errorf("quantity not conserved: taken %v + remaining %v != %v",
			takenQty, s.Quantity(), originalQty)
	}
	if !takenWorth.Add(s.Worth()).Equal(originalWorth) {
		t.Errorf("cost basis not conserved: taken %v + remaining %v != %v",
			takenWorth, s.Worth(), originalWorth)
	}
}

func TestStack_NoAliasing_TakenFragmentsAreValues(t *testing.T) {
	// GIVEN: A fragment taken from a stack
	// WHEN: The stack is consumed further
	// THEN: The fragment is unchanged

	s := newStack(batch("0.50", "10"))
	taken := s.TakeFront(dec("4"))
	s.TakeFront(dec("6"))

	assertBatches(t, []seller.Batch{batch("0.50", "4")}, taken)
}

// =============================================================================
// EQUALIZE TESTS
// =============================================================================

func TestStack_Equalize_CollapsesToBlendedLot(t *testing.T) {
	// GIVEN: 10@1.00 and 10@2.00
	// WHEN: Equalizing
	// THEN: A single lot 20@1.50 remains

	s := newStack(batch("1.00", "10"), batch("2.00", "10"))
	s.Equalize()

	assertBatches(t, []seller.Batch{batch("1.50", "20")}, s.Batches())
}

func TestStack_Equalize_EmptyStackIsNoOp(t *testing.T) {
	s := newStack()
	s.Equalize()

	if s.Len() != 0 {
		t.Errorf("expected empty stack, got %v", s.Batches())
	}
}

/*
ledger.go - Cash-constrained top-level aggregate

PURPOSE:
  The Ledger holds cash, the inventory store, the history of fulfilled
  sales and recorded expenses. It enforces the cash and stock invariants
  around buy/sell/pay and derives all financial metrics on demand.

DATA FLOW:
  buy  -> debit cash, push a new lot into the inventory
  sell -> costing policy selects/splits lots, Parcel appended to history,
          cash credited with the sale's worth
  pay  -> debit cash, Expense appended to history

DERIVED METRICS (pure folds, never cached):
  revenue      = sum of parcel revenue
  cogs         = sum of parcel cost basis
  gross margin = revenue - cogs
  expenses     = sum of expense amounts
  earned       = gross margin - expenses

MODES:
  Strict (default): buy/pay fail with ErrInsufficientFunds rather than
  drive cash negative; a sell that cannot be fully satisfied fails and
  changes nothing.

  Permissive (legacy compatibility): EnforceCashLimit=false lets cash go
  negative; PermissiveSell=true turns failed sells into silent no-ops.
  Strict is the reference behavior - permissive mode silently drops data
  and exists only to match the earliest revision of this system.

CONCURRENCY:
  Single-threaded by design. If embedded in a concurrent host, treat the
  whole Ledger as one unit of mutual exclusion: lot mutation and cash
  mutation are not independently safe to interleave.
*/
package seller

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONFIG
// =============================================================================

type Config struct {
	// Costing selects the lot consumption policy. Empty defaults to FIFO.
	Costing CostingMethod

	// OpeningCash is the cash position at creation. Zero value is zero cash.
	OpeningCash decimal.Decimal

	// EnforceCashLimit makes Buy and Pay fail with ErrInsufficientFunds
	// instead of driving cash negative.
	EnforceCashLimit bool

	// PermissiveSell turns stock failures on Sell into silent no-ops.
	PermissiveSell bool
}

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	cfg       Config
	cash      decimal.Decimal
	inventory *Inventory
	fulfilled []Parcel
	spent     []Expense
}

// New creates a ledger with the given configuration. Fails only on an
// unknown costing method.
func New(cfg Config) (*Ledger, error) {
	policy, err := PolicyFor(cfg.Costing)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		cfg:       cfg,
		cash:      cfg.OpeningCash,
		inventory: NewInventory(policy),
	}, nil
}

// Costing returns the active costing method.
func (l *Ledger) Costing() CostingMethod {
	return l.inventory.Policy().Method()
}

// =============================================================================
// MUTATIONS - Each fully applies or leaves all state unchanged
// =============================================================================

// Buy debits cash by the order's worth and pushes a new lot into the
// inventory. With EnforceCashLimit, fails when cost exceeds cash.
func (l *Ledger) Buy(o Order) error {
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("buy %q: %w", o.Item, ErrNonPositiveQuantity)
	}
	cost := o.Worth()
	if l.cfg.EnforceCashLimit && cost.GreaterThan(l.cash) {
		return &InsufficientFundsError{Action: "buy", Cash: l.cash, Required: cost}
	}
	l.cash = l.cash.Sub(cost)
	l.inventory.Add(o.Item, o.Batch())
	return nil
}

// Sell consumes lots to satisfy the order, appends the resulting Parcel
// to history and credits cash with the sale's worth. On ErrNotInStock or
// ErrInsufficientStock nothing changes; with PermissiveSell those two
// failures are swallowed instead.
func (l *Ledger) Sell(o Order) error {
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("sell %q: %w", o.Item, ErrNonPositiveQuantity)
	}
	parcel, err := l.inventory.Consume(o.Item, o.Quantity, o.UnitPrice)
	if err != nil {
		if l.cfg.PermissiveSell && IsStockError(err) {
			return nil
		}
		return err
	}
	l.fulfilled = append(l.fulfilled, parcel)
	l.cash = l.cash.Add(parcel.Revenue())
	return nil
}

// Pay records an expense and debits cash. With EnforceCashLimit, fails
// when the amount exceeds cash.
func (l *Ledger) Pay(amount decimal.Decimal, description string) error {
	if amount.IsNegative() {
		return fmt.Errorf("pay %q: %w", description, ErrNegativeAmount)
	}
	if l.cfg.EnforceCashLimit && amount.GreaterThan(l.cash) {
		return &InsufficientFundsError{Action: "pay", Cash: l.cash, Required: amount}
	}
	l.cash = l.cash.Sub(amount)
	l.spent = append(l.spent, Expense{Amount: amount, Description: description})
	return nil
}

// =============================================================================
// DERIVED METRICS - Pure folds over history and current lot state
// =============================================================================

// Cash is the current cash position.
func (l *Ledger) Cash() decimal.Decimal {
	return l.cash
}

// Revenue is the total brought in across all fulfilled sales.
func (l *Ledger) Revenue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range l.fulfilled {
		total = total.Add(p.Revenue())
	}
	return total
}

// COGS is the total cost basis of everything sold.
func (l *Ledger) COGS() decimal.Decimal {
	total := decimal.Zero
	for _, p := range l.fulfilled {
		total = total.Add(p.COGS())
	}
	return total
}

// GrossMargin is revenue minus COGS.
func (l *Ledger) GrossMargin() decimal.Decimal {
	return l.Revenue().Sub(l.COGS())
}

// Expenses is the total of recorded expense amounts.
func (l *Ledger) Expenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.spent {
		total = total.Add(e.Amount)
	}
	return total
}

// Earned is net income: gross margin minus expenses.
func (l *Ledger) Earned() decimal.Decimal {
	return l.GrossMargin().Sub(l.Expenses())
}

// Worth is the current inventory valuation at cost.
func (l *Ledger) Worth() decimal.Decimal {
	return l.inventory.Worth()
}

// =============================================================================
// READ ACCESSORS - For reporting collaborators
// =============================================================================

// TotalQuantity is the on-hand quantity for an item, zero when unknown.
func (l *Ledger) TotalQuantity(item string) decimal.Decimal {
	return l.inventory.TotalQuantity(item)
}

// Lots returns a copy of an item's current lots in purchase order.
func (l *Ledger) Lots(item string) []Batch {
	return l.inventory.Lots(item)
}

// Holdings returns a copy of every item's current lots.
func (l *Ledger) Holdings() map[string][]Batch {
	return l.inventory.Holdings()
}

// Fulfilled returns a copy of the sale history. Fragment slices are
// copied too, so callers cannot reach back into recorded parcels.
func (l *Ledger) Fulfilled() []Parcel {
	out := make([]Parcel, len(l.fulfilled))
	for i, p := range l.fulfilled {
		out[i] = p
		out[i].Batches = append([]Batch(nil), p.Batches...)
	}
	return out
}

// Sales returns the sale history as plain order records.
func (l *Ledger) Sales() []Order {
	out := make([]Order, len(l.fulfilled))
	for i, p := range l.fulfilled {
		out[i] = p.Order()
	}
	return out
}

// Spent returns a copy of the expense history.
func (l *Ledger) Spent() []Expense {
	out := make([]Expense, len(l.spent))
	copy(out, l.spent)
	return out
}

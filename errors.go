/*
errors.go - Centralized error types for the costing engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers must be able to distinguish "no stock at all" from "some stock
  but not enough" - reporting depends on this distinction.

ERROR CATEGORIES:
  1. Stock errors - item unknown or on-hand quantity short of the request
  2. Cash errors  - purchase or expense would drive cash negative
  3. Input errors - malformed orders (non-positive quantity, bad method)

USAGE:
  Match by sentinel:

    if errors.Is(err, seller.ErrInsufficientStock) { ... }

  Or unwrap details:

    var short *seller.InsufficientStockError
    if errors.As(err, &short) {
        retryQty := short.Available
    }

NO OPERATION IS FATAL:
  After any of these failures the ledger remains usable and unchanged.
  Retry is a caller concern (e.g. retry a sale at reduced quantity).
*/
package seller

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotInStock is returned when the item key has never been purchased
	// or everything bought has already been sold.
	ErrNotInStock = errors.New("item not in stock")

	// ErrInsufficientStock is returned when the item is known but the
	// on-hand quantity is less than requested.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInsufficientFunds is returned when the cash limit is enforced and
	// a purchase or expense would drive cash negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNonPositiveQuantity is returned for buy/sell orders with a
	// quantity of zero or less. A zero-quantity sale never records an
	// empty Parcel.
	ErrNonPositiveQuantity = errors.New("quantity must be positive")

	// ErrNegativeAmount is returned for expenses with a negative amount.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrUnknownCostingMethod is returned when configuring a ledger with
	// a costing method it does not implement.
	ErrUnknownCostingMethod = errors.New("unknown costing method")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotInStockError identifies the item that has no recorded lots.
type NotInStockError struct {
	Item string
}

func (e *NotInStockError) Error() string {
	return fmt.Sprintf("not in stock: %q", e.Item)
}

func (e *NotInStockError) Unwrap() error { return ErrNotInStock }

// InsufficientStockError provides details about a stock shortage.
type InsufficientStockError struct {
	Item      string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %q: available %v, requested %v, shortfall %v",
		e.Item, e.Available, e.Requested, e.Shortfall())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Shortfall is the quantity the sale was short by.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// InsufficientFundsError provides details about a cash shortage.
type InsufficientFundsError struct {
	Action   string // "buy" or "pay"
	Cash     decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds to %s: cash %v, required %v",
		e.Action, e.Cash, e.Required)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsStockError returns true for the two stock availability failures.
func IsStockError(err error) bool {
	return errors.Is(err, ErrNotInStock) ||
		errors.Is(err, ErrInsufficientStock)
}

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine defect.
func IsClientError(err error) bool {
	return IsStockError(err) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrNonPositiveQuantity) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrUnknownCostingMethod)
}

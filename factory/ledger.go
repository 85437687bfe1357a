/*
Package factory provides JSON to ledger conversion.

PURPOSE:
  Converts JSON ledger definitions into configured seller.Ledger objects.
  This enables setup without code changes - a deployment can define its
  costing method, opening cash and enforcement modes in JSON.

JSON SCHEMA:
  {
    "costing": "fifo",
    "opening_cash": "100.00",
    "enforce_cash_limit": true,
    "permissive_sell": false
  }

DEFAULTS:
  costing: fifo, opening_cash: 0, both enforcement flags off. Strict cash
  enforcement must be opted into; permissive sell exists only for
  compatibility with the earliest revision of this system.

USAGE:
  ledger, err := factory.ParseLedger(factory.StrictFIFOJSON("250.00"))

SEE ALSO:
  - seller.Config: The structure this package populates
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/epogrebnyak/seller"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// LedgerJSON is the JSON representation of a ledger configuration.
type LedgerJSON struct {
	Costing          string `json:"costing,omitempty"`
	OpeningCash      string `json:"opening_cash,omitempty"`
	EnforceCashLimit bool   `json:"enforce_cash_limit,omitempty"`
	PermissiveSell   bool   `json:"permissive_sell,omitempty"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// ParseLedger builds a ledger from a JSON document.
func ParseLedger(raw string) (*seller.Ledger, error) {
	var doc LedgerJSON
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("invalid ledger config: %w", err)
	}
	return Build(doc)
}

// Build converts a parsed document into a configured ledger.
func Build(doc LedgerJSON) (*seller.Ledger, error) {
	cash := decimal.Zero
	if doc.OpeningCash != "" {
		parsed, err := decimal.NewFromString(doc.OpeningCash)
		if err != nil {
			return nil, fmt.Errorf("invalid opening_cash %q: %w", doc.OpeningCash, err)
		}
		if parsed.IsNegative() {
			return nil, fmt.Errorf("invalid opening_cash %q: must not be negative", doc.OpeningCash)
		}
		cash = parsed
	}

	return seller.New(seller.Config{
		Costing:          seller.CostingMethod(doc.Costing),
		OpeningCash:      cash,
		EnforceCashLimit: doc.EnforceCashLimit,
		PermissiveSell:   doc.PermissiveSell,
	})
}

// =============================================================================
// PRESETS - Ready-to-use JSON documents
// =============================================================================

// StrictFIFOJSON is the reference configuration: FIFO costing with cash
// enforcement.
func StrictFIFOJSON(openingCash string) string {
	return marshal(LedgerJSON{
		Costing:          string(seller.FIFO),
		OpeningCash:      openingCash,
		EnforceCashLimit: true,
	})
}

// PermissiveFIFOJSON matches the earliest revision: no cash limit,
// failed sells silently ignored.
func PermissiveFIFOJSON() string {
	return marshal(LedgerJSON{
		Costing:        string(seller.FIFO),
		PermissiveSell: true,
	})
}

// WeightedAverageJSON configures blended-cost accounting with cash
// enforcement.
func WeightedAverageJSON(openingCash string) string {
	return marshal(LedgerJSON{
		Costing:          string(seller.WeightedAverage),
		OpeningCash:      openingCash,
		EnforceCashLimit: true,
	})
}

func marshal(doc LedgerJSON) string {
	out, err := json.Marshal(doc)
	if err != nil {
		panic(err) // static structs cannot fail to marshal
	}
	return string(out)
}

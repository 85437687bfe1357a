/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:
  Provides pre-built scenarios that populate the ledger with realistic
  trade flows for demos. Each scenario resets the ledger, registers
  catalog items, and replays purchases, sales and expenses.

AVAILABLE SCENARIOS:
  movie-kiosk:  FIFO costing, popcorn and soda retail with split lots
  stationery:   FIFO costing, bulk pen trading plus selling expenses
  blended-cost: Weighted-average costing, lots collapse on purchase

HOW SCENARIOS WORK:
  1. Build a fresh ledger from the scenario's JSON config (factory)
  2. Register items in the catalog
  3. Replay buy/sell/pay operations

NOTE:
  Scenarios replace the current ledger. Only use in development/demo
  environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - factory: Ledger JSON definitions
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/epogrebnyak/seller"
	"github.com/epogrebnyak/seller/catalog"
	"github.com/epogrebnyak/seller/factory"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "movie-kiosk",
		Name:        "Movie Kiosk",
		Description: "FIFO costing: popcorn and soda bought wholesale, sold retail across lot boundaries",
	},
	{
		ID:          "stationery",
		Name:        "Stationery Trader",
		Description: "FIFO costing: bulk pen lots sold through with selling expenses and overhead",
	},
	{
		ID:          "blended-cost",
		Name:        "Blended Cost",
		Description: "Weighted-average costing: every purchase collapses lots to one blended unit cost",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario replaces the ledger with a scenario's state.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	switch req.ScenarioID {
	case "movie-kiosk":
		err = h.loadMovieKiosk()
	case "stationery":
		err = h.loadStationery()
	case "blended-cost":
		err = h.loadBlendedCost()
	default:
		writeError(w, http.StatusBadRequest, "unknown scenario: "+req.ScenarioID)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.currentScenario = req.ScenarioID
	h.log.Info().Str("scenario", req.ScenarioID).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, h.report())
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadMovieKiosk replays the popcorn/soda flow: two popcorn lots, one
// soda lot, sales crossing the first lot boundary. Opening cash covers
// the purchases exactly.
func (h *Handler) loadMovieKiosk() error {
	ledger, err := factory.ParseLedger(factory.StrictFIFOJSON("125.00"))
	if err != nil {
		return err
	}
	cat := catalog.New(catalog.WithCodeLength(h.codeLength))

	popcorn, err := cat.Register("Premium popcorn", "")
	if err != nil {
		return err
	}
	soda, err := cat.Register("Soda 330 ml", "")
	if err != nil {
		return err
	}

	steps := []func() error{
		func() error { return ledger.Buy(order(popcorn, "0.90", "25")) },
		func() error { return ledger.Buy(order(popcorn, "0.75", "50")) },
		func() error { return ledger.Buy(order(soda, "0.65", "100")) },
		func() error { return ledger.Sell(order(popcorn, "2.50", "35")) },
		func() error { return ledger.Sell(order(soda, "1.25", "50")) },
	}
	if err := run(steps); err != nil {
		return err
	}

	h.ledger, h.catalog = ledger, cat
	return nil
}

// loadStationery replays the bulk pen flow with expenses.
func (h *Handler) loadStationery() error {
	ledger, err := factory.ParseLedger(factory.StrictFIFOJSON("120.00"))
	if err != nil {
		return err
	}
	cat := catalog.New(catalog.WithCodeLength(h.codeLength))

	pen, err := cat.Register("BIC Gel-ocity Retractable Quick Dry Gel Pen, Medium Point (0.7mm), Blue", "")
	if err != nil {
		return err
	}

	steps := []func() error{
		func() error { return ledger.Buy(order(pen, "0.55", "100")) },
		func() error { return ledger.Buy(order(pen, "0.65", "80")) },
		func() error { return ledger.Buy(order(pen, "0.50", "20")) },
		func() error { return ledger.Sell(order(pen, "1.05", "150")) },
		func() error { return ledger.Pay(dec("20"), "selling expenses") },
		func() error { return ledger.Pay(dec("15"), "overhead") },
	}
	if err := run(steps); err != nil {
		return err
	}

	h.ledger, h.catalog = ledger, cat
	return nil
}

// loadBlendedCost demonstrates weighted-average lot collapsing.
func (h *Handler) loadBlendedCost() error {
	ledger, err := factory.ParseLedger(factory.WeightedAverageJSON("30.00"))
	if err != nil {
		return err
	}
	cat := catalog.New(catalog.WithCodeLength(h.codeLength))

	widget, err := cat.Register("Widget, blended cost demo", "")
	if err != nil {
		return err
	}

	steps := []func() error{
		func() error { return ledger.Buy(order(widget, "1.00", "10")) },
		func() error { return ledger.Buy(order(widget, "2.00", "10")) },
		func() error { return ledger.Sell(order(widget, "3.00", "5")) },
	}
	if err := run(steps); err != nil {
		return err
	}

	h.ledger, h.catalog = ledger, cat
	return nil
}

// =============================================================================
// SMALL HELPERS
// =============================================================================

func order(item, unitPrice, quantity string) seller.Order {
	return seller.NewOrder(item, dec(unitPrice), dec(quantity))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("bad scenario constant %q: %v", s, err))
	}
	return d
}

func run(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

/*
handlers.go - HTTP API handlers for the costing engine

PURPOSE:
  Exposes the seller ledger and catalog via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Catalog:
    GET    /api/items              List catalog entries
    POST   /api/items              Register an item
    GET    /api/items/{code}/lots  Current lots for an item

  Ledger:
    POST   /api/buy                Purchase a lot
    POST   /api/sell               Sell against held lots
    POST   /api/pay                Record an expense
    GET    /api/sales              Fulfilled sale history
    GET    /api/expenses           Expense history
    GET    /api/report             Derived financial metrics

  Scenarios:
    GET    /api/scenarios          List demo scenarios
    GET    /api/scenarios/current  Currently loaded scenario
    POST   /api/scenarios/load     Load a demo scenario
    POST   /api/reset              Fresh ledger and catalog

LOCKING:
  The engine is single-writer by design: lot mutation and cash mutation
  are not independently safe to interleave. One mutex around the whole
  ledger+catalog pair serializes every handler.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed payloads, non-positive quantities
  - 404: Item not in stock / unknown
  - 409: Insufficient stock or funds
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/epogrebnyak/seller"
	"github.com/epogrebnyak/seller/catalog"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	mu      sync.Mutex
	ledger  *seller.Ledger
	catalog *catalog.Catalog
	log     zerolog.Logger

	// Config used to rebuild the ledger on reset.
	cfg        seller.Config
	codeLength int

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a handler around a fresh ledger built from cfg.
func NewHandler(cfg seller.Config, codeLength int, log zerolog.Logger) (*Handler, error) {
	ledger, err := seller.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{
		ledger:     ledger,
		catalog:    catalog.New(catalog.WithCodeLength(codeLength)),
		log:        log,
		cfg:        cfg,
		codeLength: codeLength,
	}, nil
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// ListItems returns all catalog entries in registration order.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := []ItemDTO{}
	for _, code := range h.catalog.Codes() {
		description, _ := h.catalog.Describe(code)
		items = append(items, ItemDTO{Code: code, Description: description})
	}
	writeJSON(w, http.StatusOK, items)
}

// RegisterItem registers a description and returns its code.
func (h *Handler) RegisterItem(w http.ResponseWriter, r *http.Request) {
	var req RegisterItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	code, err := h.catalog.Register(req.Description, req.Code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Str("code", code).Str("description", req.Description).Msg("item registered")
	writeJSON(w, http.StatusCreated, ItemDTO{Code: code, Description: req.Description})
}

// GetLots returns the current lot sequence for an item.
func (h *Handler) GetLots(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	h.mu.Lock()
	defer h.mu.Unlock()

	description, known := h.catalog.Describe(code)
	lots := h.ledger.Lots(code)
	if !known && lots == nil {
		writeError(w, http.StatusNotFound, "unknown item: "+code)
		return
	}

	writeJSON(w, http.StatusOK, LotsDTO{
		Item:          code,
		Description:   description,
		Batches:       toBatchDTOs(lots),
		TotalQuantity: h.ledger.TotalQuantity(code).String(),
		Worth:         batchesWorth(lots).String(),
	})
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// Buy purchases a lot.
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	order, ok := h.decodeOrder(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ledger.Buy(order); err != nil {
		h.writeLedgerError(w, err)
		return
	}

	h.log.Info().
		Str("item", order.Item).
		Str("unit_price", order.UnitPrice.String()).
		Str("quantity", order.Quantity.String()).
		Msg("lot purchased")
	writeJSON(w, http.StatusOK, h.report())
}

// Sell sells against held lots.
func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	order, ok := h.decodeOrder(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ledger.Sell(order); err != nil {
		h.writeLedgerError(w, err)
		return
	}

	h.log.Info().
		Str("item", order.Item).
		Str("unit_price", order.UnitPrice.String()).
		Str("quantity", order.Quantity.String()).
		Msg("sale fulfilled")
	writeJSON(w, http.StatusOK, h.report())
}

// Pay records an expense.
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: "+req.Amount)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ledger.Pay(amount, req.Description); err != nil {
		h.writeLedgerError(w, err)
		return
	}

	h.log.Info().
		Str("amount", amount.String()).
		Str("description", req.Description).
		Msg("expense recorded")
	writeJSON(w, http.StatusOK, h.report())
}

// ListSales returns the fulfilled sale history.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sales := []SaleDTO{}
	for _, p := range h.ledger.Fulfilled() {
		sales = append(sales, toSaleDTO(p))
	}
	writeJSON(w, http.StatusOK, sales)
}

// ListExpenses returns the expense history.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	expenses := []ExpenseDTO{}
	for _, e := range h.ledger.Spent() {
		expenses = append(expenses, ExpenseDTO{
			Amount:      e.Amount.String(),
			Description: e.Description,
		})
	}
	writeJSON(w, http.StatusOK, expenses)
}

// GetReport returns the derived financial metrics.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	writeJSON(w, http.StatusOK, h.report())
}

// Reset replaces the ledger and catalog with fresh ones.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.resetLocked(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.currentScenario = ""
	h.log.Info().Msg("ledger reset")
	writeJSON(w, http.StatusOK, h.report())
}

// =============================================================================
// HELPERS
// =============================================================================

// report assembles the metrics DTO. Callers hold the mutex.
func (h *Handler) report() ReportDTO {
	return ReportDTO{
		Costing:        string(h.ledger.Costing()),
		Cash:           h.ledger.Cash().String(),
		Revenue:        h.ledger.Revenue().String(),
		COGS:           h.ledger.COGS().String(),
		GrossMargin:    h.ledger.GrossMargin().String(),
		Expenses:       h.ledger.Expenses().String(),
		Earned:         h.ledger.Earned().String(),
		InventoryWorth: h.ledger.Worth().String(),
	}
}

func (h *Handler) resetLocked() error {
	ledger, err := seller.New(h.cfg)
	if err != nil {
		return err
	}
	h.ledger = ledger
	h.catalog = catalog.New(catalog.WithCodeLength(h.codeLength))
	return nil
}

func (h *Handler) decodeOrder(w http.ResponseWriter, r *http.Request) (seller.Order, bool) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return seller.Order{}, false
	}
	if req.Item == "" {
		writeError(w, http.StatusBadRequest, "item is required")
		return seller.Order{}, false
	}
	price, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid unit_price: "+req.UnitPrice)
		return seller.Order{}, false
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quantity: "+req.Quantity)
		return seller.Order{}, false
	}
	return seller.NewOrder(req.Item, price, quantity), true
}

// writeLedgerError maps engine errors onto HTTP status codes.
func (h *Handler) writeLedgerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, seller.ErrNotInStock):
		status = http.StatusNotFound
	case errors.Is(err, seller.ErrInsufficientStock),
		errors.Is(err, seller.ErrInsufficientFunds):
		status = http.StatusConflict
	case seller.IsClientError(err):
		status = http.StatusBadRequest
	}
	h.log.Warn().Err(err).Int("status", status).Msg("operation rejected")
	writeError(w, status, err.Error())
}

func batchesWorth(batches []seller.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(b.Worth())
	}
	return total
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorDTO{Error: message})
}

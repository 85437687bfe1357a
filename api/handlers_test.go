package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epogrebnyak/seller"
	"github.com/epogrebnyak/seller/api"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T, cfg seller.Config) *httptest.Server {
	t.Helper()
	handler, err := api.NewHandler(cfg, 4, zerolog.Nop())
	require.NoError(t, err)
	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

// doJSON posts a body (or GETs when body is nil) and decodes the response.
func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func assertDecField(t *testing.T, want, got string, field string) {
	t.Helper()
	w, err := decimal.NewFromString(want)
	require.NoError(t, err)
	g, err := decimal.NewFromString(got)
	require.NoError(t, err)
	assert.True(t, w.Equal(g), "%s: expected %s, got %s", field, want, got)
}

// =============================================================================
// CATALOG
// =============================================================================

func TestAPI_RegisterAndListItems(t *testing.T) {
	server := newTestServer(t, seller.Config{})

	var created api.ItemDTO
	resp := doJSON(t, http.MethodPost, server.URL+"/api/items",
		api.RegisterItemRequest{Description: "Premium popcorn"}, &created)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, created.Code, 4)
	assert.Equal(t, "Premium popcorn", created.Description)

	var items []api.ItemDTO
	resp = doJSON(t, http.MethodGet, server.URL+"/api/items", nil, &items)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, items, 1)
	assert.Equal(t, created.Code, items[0].Code)
}

func TestAPI_RegisterItem_RequiresDescription(t *testing.T) {
	server := newTestServer(t, seller.Config{})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/items",
		api.RegisterItemRequest{}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// TRADING FLOW
// =============================================================================

func TestAPI_BuySellReportFlow(t *testing.T) {
	server := newTestServer(t, seller.Config{Costing: seller.FIFO, OpeningCash: mustDec("125.00")})

	buys := []api.OrderRequest{
		{Item: "popcorn", UnitPrice: "0.90", Quantity: "25"},
		{Item: "popcorn", UnitPrice: "0.75", Quantity: "50"},
		{Item: "soda", UnitPrice: "0.65", Quantity: "100"},
	}
	for _, b := range buys {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/buy", b, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	sells := []api.OrderRequest{
		{Item: "popcorn", UnitPrice: "2.50", Quantity: "35"},
		{Item: "soda", UnitPrice: "1.25", Quantity: "50"},
	}
	for _, s := range sells {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/sell", s, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var report api.ReportDTO
	resp := doJSON(t, http.MethodGet, server.URL+"/api/report", nil, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "fifo", report.Costing)
	assertDecField(t, "150", report.Revenue, "revenue")
	assertDecField(t, "62.5", report.COGS, "cogs")
	assertDecField(t, "87.5", report.GrossMargin, "gross_margin")
	assertDecField(t, "87.5", report.Earned, "earned")
	assertDecField(t, "150", report.Cash, "cash")

	var sales []api.SaleDTO
	doJSON(t, http.MethodGet, server.URL+"/api/sales", nil, &sales)
	require.Len(t, sales, 2)
	assert.Equal(t, "popcorn", sales[0].Item)

	var lots api.LotsDTO
	resp = doJSON(t, http.MethodGet, server.URL+"/api/items/popcorn/lots", nil, &lots)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, lots.Batches, 1)
	assertDecField(t, "0.75", lots.Batches[0].UnitCost, "unit_cost")
	assertDecField(t, "40", lots.Batches[0].Quantity, "quantity")
}

func TestAPI_PayRecordsExpense(t *testing.T) {
	server := newTestServer(t, seller.Config{OpeningCash: mustDec("50")})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/pay",
		api.PayRequest{Amount: "20", Description: "selling expenses"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var expenses []api.ExpenseDTO
	doJSON(t, http.MethodGet, server.URL+"/api/expenses", nil, &expenses)
	require.Len(t, expenses, 1)
	assert.Equal(t, "selling expenses", expenses[0].Description)
	assertDecField(t, "20", expenses[0].Amount, "amount")
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestAPI_SellUnknownItem_NotFound(t *testing.T) {
	server := newTestServer(t, seller.Config{})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/sell",
		api.OrderRequest{Item: "ghost", UnitPrice: "1.00", Quantity: "1"}, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Oversell_Conflict(t *testing.T) {
	server := newTestServer(t, seller.Config{})

	doJSON(t, http.MethodPost, server.URL+"/api/buy",
		api.OrderRequest{Item: "pen", UnitPrice: "0.50", Quantity: "5"}, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/sell",
		api.OrderRequest{Item: "pen", UnitPrice: "1.00", Quantity: "6"}, nil)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// State unchanged after the rejected sale.
	var lots api.LotsDTO
	doJSON(t, http.MethodGet, server.URL+"/api/items/pen/lots", nil, &lots)
	assertDecField(t, "5", lots.TotalQuantity, "total_quantity")
}

func TestAPI_StrictBuyWithoutFunds_Conflict(t *testing.T) {
	server := newTestServer(t, seller.Config{OpeningCash: mustDec("10"), EnforceCashLimit: true})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/buy",
		api.OrderRequest{Item: "pen", UnitPrice: "11", Quantity: "1"}, nil)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_BadPayloads_BadRequest(t *testing.T) {
	server := newTestServer(t, seller.Config{})

	// Malformed JSON
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/buy",
		bytes.NewReader([]byte(`{not json`)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Bad decimal
	resp2 := doJSON(t, http.MethodPost, server.URL+"/api/buy",
		api.OrderRequest{Item: "pen", UnitPrice: "cheap", Quantity: "5"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)

	// Zero quantity
	resp3 := doJSON(t, http.MethodPost, server.URL+"/api/sell",
		api.OrderRequest{Item: "pen", UnitPrice: "1.00", Quantity: "0"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestAPI_UnknownItemLots_NotFound(t *testing.T) {
	server := newTestServer(t, seller.Config{})

	resp := doJSON(t, http.MethodGet, server.URL+"/api/items/ghost/lots", nil, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// HELPERS
// =============================================================================

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

NUMERIC FIELDS:
  All money and quantity fields travel as decimal strings ("0.55"), never
  as JSON numbers, to keep client-side precision intact.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import "github.com/epogrebnyak/seller"

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ItemDTO represents a catalog entry in API responses.
type ItemDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// RegisterItemRequest is the request to register an item. Code is
// optional; an empty or taken code is replaced by an issued one.
type RegisterItemRequest struct {
	Description string `json:"description"`
	Code        string `json:"code,omitempty"`
}

// OrderRequest is the request body for buy and sell.
type OrderRequest struct {
	Item      string `json:"item"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
}

// PayRequest is the request body for recording an expense.
type PayRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// BatchDTO represents one inventory lot.
type BatchDTO struct {
	UnitCost string `json:"unit_cost"`
	Quantity string `json:"quantity"`
}

// LotsDTO represents an item's current lot sequence.
type LotsDTO struct {
	Item          string     `json:"item"`
	Description   string     `json:"description,omitempty"`
	Batches       []BatchDTO `json:"batches"`
	TotalQuantity string     `json:"total_quantity"`
	Worth         string     `json:"worth"`
}

// SaleDTO represents one fulfilled sale.
type SaleDTO struct {
	Item      string `json:"item"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
	Revenue   string `json:"revenue"`
	COGS      string `json:"cogs"`
}

// ExpenseDTO represents one recorded expense.
type ExpenseDTO struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// ReportDTO carries the derived financial metrics.
type ReportDTO struct {
	Costing        string `json:"costing"`
	Cash           string `json:"cash"`
	Revenue        string `json:"revenue"`
	COGS           string `json:"cogs"`
	GrossMargin    string `json:"gross_margin"`
	Expenses       string `json:"expenses"`
	Earned         string `json:"earned"`
	InventoryWorth string `json:"inventory_worth"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorDTO is the uniform error envelope.
type ErrorDTO struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toBatchDTOs(batches []seller.Batch) []BatchDTO {
	out := make([]BatchDTO, len(batches))
	for i, b := range batches {
		out[i] = BatchDTO{
			UnitCost: b.UnitCost.String(),
			Quantity: b.Quantity.String(),
		}
	}
	return out
}

func toSaleDTO(p seller.Parcel) SaleDTO {
	return SaleDTO{
		Item:      p.Item,
		UnitPrice: p.SaleUnitPrice.String(),
		Quantity:  p.Quantity().String(),
		Revenue:   p.Revenue().String(),
		COGS:      p.COGS().String(),
	}
}

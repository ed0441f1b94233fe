// Package tax implements the SARS VAT tax provider: per-line tax rate
// computation with feature-gated adjustments for the beauty catalog, plus the
// admin setup that installs the tax regions and rates it draws from.
package tax

// RateCandidate is one applicable rate attached to a calculation line.
type RateCandidate struct {
	ID   string  `json:"id"`
	Rate float64 `json:"rate"`
	Name string  `json:"name"`
	Code string  `json:"code"`
}

// CalculationLine is an order item line submitted for tax calculation.
type CalculationLine struct {
	LineItemID  string          `json:"line_item_id"`
	ProductType string          `json:"product_type"`
	ProductName string          `json:"product_name"`
	UnitPrice   float64         `json:"unit_price"`
	Rates       []RateCandidate `json:"rates"`
}

// ShippingCalculationLine is a shipping line submitted for tax calculation.
type ShippingCalculationLine struct {
	ShippingLineID string          `json:"shipping_line_id"`
	Rates          []RateCandidate `json:"rates"`
}

// Address carries the parts of the shipping address the calculator needs.
type Address struct {
	CountryCode string `json:"country_code"`
}

// Allocation is one entry of the order value breakdown.
type Allocation struct {
	Amount float64 `json:"amount"`
}

// CalculationContext is the order context for a calculation run. The
// allocation map is only used to compute the aggregate order total for
// threshold checks.
type CalculationContext struct {
	Address       Address      `json:"address"`
	AllocationMap []Allocation `json:"allocation_map"`
}

// TaxLine is one computed result: a candidate rate applied to a line. Either
// LineItemID or ShippingLineID is set, never both.
type TaxLine struct {
	RateID         string  `json:"rate_id"`
	Rate           float64 `json:"rate"`
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	LineItemID     string  `json:"line_item_id,omitempty"`
	ShippingLineID string  `json:"shipping_line_id,omitempty"`
	ProviderID     string  `json:"provider_id"`
}

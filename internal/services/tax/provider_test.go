package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestProvider(options Options) *Provider {
	return NewProvider(options, zap.NewNop())
}

func itemLine(productType, productName string, unitPrice float64, rates ...RateCandidate) CalculationLine {
	return CalculationLine{
		LineItemID:  "item_1",
		ProductType: productType,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Rates:       rates,
	}
}

func standardRate(rate float64) RateCandidate {
	return RateCandidate{ID: "txr_1", Rate: rate, Name: "VAT Standard Rate", Code: "VAT_ZA"}
}

func TestGetTaxLines_ItemRates(t *testing.T) {
	tests := []struct {
		name     string
		options  Options
		line     CalculationLine
		context  CalculationContext
		wantRate float64
	}{
		{
			name:     "product specific tax disabled passes rate through",
			options:  Options{EnableBeautyDiscounts: true},
			line:     itemLine("hair-care", "Argan Repair Shampoo", 24900, standardRate(15)),
			wantRate: 15,
		},
		{
			name: "hair care discount",
			options: Options{
				EnableProductSpecificTax: true,
				EnableBeautyDiscounts:    true,
			},
			line:     itemLine("hair-care", "Argan Repair Shampoo", 24900, standardRate(15)),
			wantRate: 15 * 0.9,
		},
		{
			name: "cosmetics markup",
			options: Options{
				EnableProductSpecificTax: true,
				EnableBeautyDiscounts:    true,
			},
			line:     itemLine("cosmetics", "Velvet Matte Lipstick", 32900, standardRate(15)),
			wantRate: 15 * 1.1,
		},
		{
			name: "custom discount and markup rates",
			options: Options{
				EnableProductSpecificTax: true,
				EnableBeautyDiscounts:    true,
				HairCareDiscountRate:     0.25,
			},
			line:     itemLine("hair-care", "Argan Repair Shampoo", 24900, standardRate(20)),
			wantRate: 20 * 0.75,
		},
		{
			name: "premium price overrides hair care discount",
			options: Options{
				EnableProductSpecificTax: true,
				EnableBeautyDiscounts:    true,
			},
			line:     itemLine("hair-care", "Luxury Keratin Treatment", 60000, standardRate(15)),
			wantRate: 15 * 0.95,
		},
		{
			name: "premium price overrides cosmetics markup",
			options: Options{
				EnableProductSpecificTax: true,
				EnableBeautyDiscounts:    true,
			},
			line:     itemLine("cosmetics", "Silk Foundation SPF15", 54900, standardRate(15)),
			wantRate: 15 * 0.95,
		},
		{
			name: "beauty discounts disabled skips adjustments",
			options: Options{
				EnableProductSpecificTax: true,
			},
			line:     itemLine("hair-care", "Argan Repair Shampoo", 60000, standardRate(15)),
			wantRate: 15,
		},
		{
			name: "za essential item is vat exempt",
			options: Options{
				EnableProductSpecificTax: true,
				EnableBeautyDiscounts:    true,
				EnableVATExemptions:      true,
			},
			line:     itemLine("skin-care", "Daily SUNSCREEN SPF50", 19900, standardRate(15)),
			context:  CalculationContext{Address: Address{CountryCode: "za"}},
			wantRate: 0,
		},
		{
			name: "exemption overrides premium discount",
			options: Options{
				EnableProductSpecificTax: true,
				EnableBeautyDiscounts:    true,
				EnableVATExemptions:      true,
			},
			line:     itemLine("skin-care", "Ceramide Moisturizer", 60000, standardRate(15)),
			context:  CalculationContext{Address: Address{CountryCode: "za"}},
			wantRate: 0,
		},
		{
			name: "exemption does not apply outside za",
			options: Options{
				EnableProductSpecificTax: true,
				EnableVATExemptions:      true,
			},
			line:     itemLine("skin-care", "Daily Sunscreen SPF50", 19900, standardRate(20)),
			context:  CalculationContext{Address: Address{CountryCode: "gb"}},
			wantRate: 20,
		},
		{
			name: "exemption disabled leaves rate in place",
			options: Options{
				EnableProductSpecificTax: true,
			},
			line:     itemLine("skin-care", "Daily Sunscreen SPF50", 19900, standardRate(15)),
			context:  CalculationContext{Address: Address{CountryCode: "za"}},
			wantRate: 15,
		},
		{
			name: "negative adjusted rate clamps to zero",
			options: Options{
				EnableProductSpecificTax: true,
				EnableBeautyDiscounts:    true,
				HairCareDiscountRate:     1.5,
			},
			line:     itemLine("hair-care", "Argan Repair Shampoo", 24900, standardRate(15)),
			wantRate: 0,
		},
		{
			name: "missing rate degrades to zero",
			options: Options{
				EnableProductSpecificTax: true,
			},
			line:     itemLine("hair-care", "Argan Repair Shampoo", 24900, RateCandidate{ID: "txr_1"}),
			wantRate: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(tt.options)

			lines := p.GetTaxLines([]CalculationLine{tt.line}, nil, tt.context)

			assert.Len(t, lines, 1)
			assert.InDelta(t, tt.wantRate, lines[0].Rate, 1e-9)
			assert.Equal(t, "txr_1", lines[0].RateID)
			assert.Equal(t, "item_1", lines[0].LineItemID)
			assert.Equal(t, ProviderID, lines[0].ProviderID)
		})
	}
}

// The premium branch reassigns from the base rate instead of stacking on the
// product-type branch. This pins the observed behavior: a premium cosmetics
// item gets base*0.95, not base*1.1*0.95.
func TestAdjustItemRate_SequentialOverwrite(t *testing.T) {
	p := newTestProvider(Options{
		EnableProductSpecificTax: true,
		EnableBeautyDiscounts:    true,
	})

	got := p.adjustItemRate(15, itemLine("cosmetics", "Silk Foundation SPF15", 54900), CalculationContext{})

	assert.InDelta(t, 15*0.95, got, 1e-9)
	assert.Less(t, got, 15*1.1*0.95)
}

func TestGetTaxLines_ShippingRates(t *testing.T) {
	shipping := []ShippingCalculationLine{{
		ShippingLineID: "sl_1",
		Rates:          []RateCandidate{standardRate(15)},
	}}

	tests := []struct {
		name     string
		options  Options
		context  CalculationContext
		wantRate float64
	}{
		{
			name:    "modifications disabled passes rate through",
			options: Options{FreeShippingThreshold: 1000},
			context:  CalculationContext{AllocationMap: []Allocation{{Amount: 200000}}},
			wantRate: 15,
		},
		{
			name: "order total above threshold waives shipping tax",
			options: Options{
				EnableShippingTaxModifications: true,
				FreeShippingThreshold:          100000,
			},
			context:  CalculationContext{AllocationMap: []Allocation{{Amount: 60000}, {Amount: 50000}}},
			wantRate: 0,
		},
		{
			name: "order total below threshold keeps shipping tax",
			options: Options{
				EnableShippingTaxModifications: true,
				FreeShippingThreshold:          100000,
			},
			context:  CalculationContext{AllocationMap: []Allocation{{Amount: 40000}}},
			wantRate: 15,
		},
		{
			name: "order total equal to threshold keeps shipping tax",
			options: Options{
				EnableShippingTaxModifications: true,
				FreeShippingThreshold:          100000,
			},
			context:  CalculationContext{AllocationMap: []Allocation{{Amount: 100000}}},
			wantRate: 15,
		},
		{
			name: "unset threshold passes rate through",
			options: Options{
				EnableShippingTaxModifications: true,
			},
			context:  CalculationContext{AllocationMap: []Allocation{{Amount: 200000}}},
			wantRate: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(tt.options)

			lines := p.GetTaxLines(nil, shipping, tt.context)

			assert.Len(t, lines, 1)
			assert.InDelta(t, tt.wantRate, lines[0].Rate, 1e-9)
			assert.Equal(t, "sl_1", lines[0].ShippingLineID)
			assert.Empty(t, lines[0].LineItemID)
		})
	}
}

func TestGetTaxLines_Ordering(t *testing.T) {
	p := newTestProvider(Options{})

	itemLines := []CalculationLine{
		{LineItemID: "item_1", Rates: []RateCandidate{
			{ID: "txr_a", Rate: 15},
			{ID: "txr_b", Rate: 0},
		}},
		{LineItemID: "item_2", Rates: []RateCandidate{
			{ID: "txr_c", Rate: 20},
		}},
	}
	shippingLines := []ShippingCalculationLine{
		{ShippingLineID: "sl_1", Rates: []RateCandidate{{ID: "txr_d", Rate: 15}}},
	}

	lines := p.GetTaxLines(itemLines, shippingLines, CalculationContext{})

	assert.Len(t, lines, 4)
	assert.Equal(t, []string{"txr_a", "txr_b", "txr_c", "txr_d"}, []string{
		lines[0].RateID, lines[1].RateID, lines[2].RateID, lines[3].RateID,
	})
	assert.Equal(t, "item_1", lines[0].LineItemID)
	assert.Equal(t, "item_1", lines[1].LineItemID)
	assert.Equal(t, "item_2", lines[2].LineItemID)
	assert.Equal(t, "sl_1", lines[3].ShippingLineID)
}

func TestOptions_Defaults(t *testing.T) {
	got := Options{}.withDefaults()
	assert.Equal(t, 0.1, got.HairCareDiscountRate)
	assert.Equal(t, 0.1, got.CosmeticsMarkupRate)

	custom := Options{HairCareDiscountRate: 0.2, CosmeticsMarkupRate: 0.05}.withDefaults()
	assert.Equal(t, 0.2, custom.HairCareDiscountRate)
	assert.Equal(t, 0.05, custom.CosmeticsMarkupRate)
}

func TestProviderIdentifier(t *testing.T) {
	assert.Equal(t, "sars-vat", newTestProvider(Options{}).Identifier())
}

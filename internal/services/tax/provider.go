package tax

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// ProviderID identifies this tax provider in checkout results.
const ProviderID = "sars-vat"

// Product types with dedicated adjustment branches.
const (
	productTypeHairCare  = "hair-care"
	productTypeCosmetics = "cosmetics"
)

// premiumPriceFloor is the unit price (minor units) above which the premium
// discount multiplier applies.
const premiumPriceFloor = 50000

// essentialItems are product name fragments that are VAT exempt for South
// African orders when exemptions are enabled.
var essentialItems = []string{"sunscreen", "moisturizer", "cleanser"}

// Provider computes tax lines for checkout. It holds no state beyond its
// options and performs no I/O; the host calls it synchronously per request.
type Provider struct {
	options Options
	logger  *zap.SugaredLogger
}

func NewProvider(options Options, logger *zap.Logger) *Provider {
	return &Provider{
		options: options.withDefaults(),
		logger:  logger.Sugar(),
	}
}

func (p *Provider) Identifier() string { return ProviderID }

// GetTaxLines produces one tax line per (line, candidate rate) pair. Item
// line results come first in input order, then shipping line results, with
// rate order preserved within each line.
func (p *Provider) GetTaxLines(itemLines []CalculationLine, shippingLines []ShippingCalculationLine, cctx CalculationContext) []TaxLine {
	taxLines := make([]TaxLine, 0, len(itemLines)+len(shippingLines))

	for _, line := range itemLines {
		for _, rate := range line.Rates {
			computed := rate.Rate
			if p.options.EnableProductSpecificTax {
				computed = p.adjustItemRate(rate.Rate, line, cctx)
			}
			taxLines = append(taxLines, TaxLine{
				RateID:     rate.ID,
				Rate:       computed,
				Name:       rate.Name,
				Code:       rate.Code,
				LineItemID: line.LineItemID,
				ProviderID: ProviderID,
			})
		}
	}

	for _, line := range shippingLines {
		for _, rate := range line.Rates {
			computed := rate.Rate
			if p.options.EnableShippingTaxModifications {
				computed = p.adjustShippingRate(rate.Rate, cctx)
			}
			taxLines = append(taxLines, TaxLine{
				RateID:         rate.ID,
				Rate:           computed,
				Name:           rate.Name,
				Code:           rate.Code,
				ShippingLineID: line.ShippingLineID,
				ProviderID:     ProviderID,
			})
		}
	}

	return taxLines
}

// adjustItemRate applies the beauty catalog adjustments. Each branch
// reassigns the adjusted rate from the base rate rather than stacking on the
// previous branch: a premium-priced cosmetics item ends up with the premium
// multiplier, not a markup on top of it.
func (p *Provider) adjustItemRate(baseRate float64, line CalculationLine, cctx CalculationContext) float64 {
	adjusted := baseRate

	if p.options.EnableBeautyDiscounts {
		if line.ProductType == productTypeHairCare {
			adjusted = baseRate * (1 - p.options.HairCareDiscountRate)
		}

		if line.ProductType == productTypeCosmetics {
			adjusted = baseRate * (1 + p.options.CosmeticsMarkupRate)
		}

		// Premium items get a flat 5% rate discount regardless of type.
		if line.UnitPrice > premiumPriceFloor {
			adjusted = baseRate * 0.95
		}
	}

	// Essential items are VAT exempt for South African orders, overriding
	// any adjustment above.
	if p.options.EnableVATExemptions && cctx.Address.CountryCode == "za" {
		name := strings.ToLower(line.ProductName)
		for _, item := range essentialItems {
			if strings.Contains(name, item) {
				return 0
			}
		}
	}

	return math.Max(0, adjusted)
}

// adjustShippingRate waives shipping tax entirely once the summed order
// allocations exceed the free shipping threshold.
func (p *Provider) adjustShippingRate(baseRate float64, cctx CalculationContext) float64 {
	if p.options.FreeShippingThreshold <= 0 {
		return baseRate
	}

	var orderTotal float64
	for _, allocation := range cctx.AllocationMap {
		orderTotal += allocation.Amount
	}

	if orderTotal > p.options.FreeShippingThreshold {
		return 0
	}
	return baseRate
}

package tax

// Default adjustment rates applied when the corresponding option is unset.
const (
	defaultHairCareDiscountRate = 0.1
	defaultCosmeticsMarkupRate  = 0.1
)

// Options are the provider's feature toggles and tuning values. Rate fields
// left at zero take their documented defaults at construction; a disabled
// toggle makes its whole branch a pass-through.
type Options struct {
	EnableProductSpecificTax       bool
	EnableBeautyDiscounts          bool
	EnableVATExemptions            bool
	EnableShippingTaxModifications bool

	HairCareDiscountRate  float64
	CosmeticsMarkupRate   float64
	FreeShippingThreshold float64
}

func (o Options) withDefaults() Options {
	if o.HairCareDiscountRate == 0 {
		o.HairCareDiscountRate = defaultHairCareDiscountRate
	}
	if o.CosmeticsMarkupRate == 0 {
		o.CosmeticsMarkupRate = defaultCosmeticsMarkupRate
	}
	return o
}

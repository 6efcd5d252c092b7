package thirdparty

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Pricing classifies how a logistics company charges for deliveries.
type Pricing string

const (
	PricingDistance Pricing = "Distance"
	PricingWeight   Pricing = "Weight"
	PricingTime     Pricing = "Time"
	PricingFlat     Pricing = "Flat"
	PricingVolume   Pricing = "Volume"
)

var pricings = []Pricing{PricingDistance, PricingWeight, PricingTime, PricingFlat, PricingVolume}

// ParsePricing matches raw case-insensitively. A blank value selects PricingFlat.
func ParsePricing(raw string) (Pricing, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PricingFlat, nil
	}
	for _, p := range pricings {
		if strings.EqualFold(string(p), raw) {
			return p, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("pricing", fmt.Errorf("%q is not a pricing model", raw))
}

func (p Pricing) String() string {
	return string(p)
}

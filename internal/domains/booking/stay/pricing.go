package stay

// CabinRate is the nightly rate of a cabin. The stored discount is added to the regular price
// as is; existing prices depend on that arithmetic.
type CabinRate struct {
	CabinID      string  `json:"cabin_id"`
	RegularPrice float64 `json:"regular_price"`
	Discount     float64 `json:"discount"`
}

func (r CabinRate) PerNight() float64 {
	return r.RegularPrice + r.Discount
}

type Pricing struct {
	NumNights  int     `json:"num_nights"`
	CabinPrice float64 `json:"cabin_price"`
	TotalPrice float64 `json:"total_price"`
}

// Nights is the number of nights between start and end, never negative.
func Nights(start, end Date) int {
	return max(0, DaysBetween(start, end))
}

func DerivePricing(rate CabinRate, start, end Date, extras float64) Pricing {
	nights := Nights(start, end)
	cabinPrice := rate.PerNight() * float64(nights)

	return Pricing{
		NumNights:  nights,
		CabinPrice: cabinPrice,
		TotalPrice: cabinPrice + extras,
	}
}

// TryDerivePricing prices a stay once a cabin is selected, both dates parse and an extras
// price has been entered. It reports false while any of them is missing.
func TryDerivePricing(rate *CabinRate, startText, endText string, extras *float64) (Pricing, bool) {
	if rate == nil || extras == nil {
		return Pricing{}, false
	}

	start, err := ParseDate(startText)
	if err != nil {
		return Pricing{}, false
	}

	end, err := ParseDate(endText)
	if err != nil {
		return Pricing{}, false
	}

	return DerivePricing(*rate, start, end, *extras), true
}

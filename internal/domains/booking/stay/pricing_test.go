package stay_test

import (
	"testing"

	"lodge/internal/domains/booking/stay"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDerivePricing(t *testing.T) {
	tests := []struct {
		name  string
		rate  stay.CabinRate
		start string
		end   string
		extra float64
		want  stay.Pricing
	}{
		{
			name:  "negative discount is added",
			rate:  stay.CabinRate{RegularPrice: 100, Discount: -20},
			start: "10/05/2024",
			end:   "13/05/2024",
			extra: 50,
			want:  stay.Pricing{NumNights: 3, CabinPrice: 240, TotalPrice: 290},
		},
		{
			name:  "no discount",
			rate:  stay.CabinRate{RegularPrice: 250},
			start: "30/12/2024",
			end:   "02/01/2025",
			want:  stay.Pricing{NumNights: 3, CabinPrice: 750, TotalPrice: 750},
		},
		{
			name:  "end before start clamps to zero",
			rate:  stay.CabinRate{RegularPrice: 100, Discount: -20},
			start: "13/05/2024",
			end:   "10/05/2024",
			extra: 50,
			want:  stay.Pricing{NumNights: 0, CabinPrice: 0, TotalPrice: 50},
		},
		{
			name:  "same day",
			rate:  stay.CabinRate{RegularPrice: 100},
			start: "10/05/2024",
			end:   "10/05/2024",
			want:  stay.Pricing{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stay.DerivePricing(tt.rate, mustDate(t, tt.start), mustDate(t, tt.end), tt.extra)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DerivePricing() mismatch (-want +got):\n%s", diff)
			}

			assert.GreaterOrEqual(t, got.NumNights, 0)
			assert.GreaterOrEqual(t, got.CabinPrice, 0.0)
		})
	}
}

func TestTryDerivePricing(t *testing.T) {
	rate := &stay.CabinRate{CabinID: "c-1", RegularPrice: 100, Discount: -20}
	extras := 50.0

	got, ok := stay.TryDerivePricing(rate, "10/05/2024", "13/05/2024", &extras)
	assert.True(t, ok)
	assert.Equal(t, stay.Pricing{NumNights: 3, CabinPrice: 240, TotalPrice: 290}, got)

	tests := []struct {
		name   string
		rate   *stay.CabinRate
		start  string
		end    string
		extras *float64
	}{
		{name: "no cabin", rate: nil, start: "10/05/2024", end: "13/05/2024", extras: &extras},
		{name: "no extras", rate: rate, start: "10/05/2024", end: "13/05/2024", extras: nil},
		{name: "bad start", rate: rate, start: "10-05-2024", end: "13/05/2024", extras: &extras},
		{name: "bad end", rate: rate, start: "10/05/2024", end: "", extras: &extras},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stay.TryDerivePricing(tt.rate, tt.start, tt.end, tt.extras)

			assert.False(t, ok)
			assert.Equal(t, stay.Pricing{}, got)
		})
	}
}

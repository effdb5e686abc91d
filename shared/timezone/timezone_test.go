package timezone_test

import (
	"testing"
	"time"

	"lodge/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
}

func TestFormatAndParse(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01", timezone.Format(parsed, "2006-01-02"))
	assert.Equal(t, timezone.GetLocation(), parsed.Location())
}

func TestStartOfDay(t *testing.T) {
	loc := timezone.GetLocation()
	afternoon := time.Date(2024, 3, 10, 15, 45, 12, 99, loc)

	start := timezone.StartOfDay(afternoon)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, start, timezone.StartOfDay(start))
}

func TestDate(t *testing.T) {
	tests := []struct {
		name   string
		year   int
		month  time.Month
		day    int
		exists bool
	}{
		{name: "regular day", year: 2024, month: time.May, day: 31, exists: true},
		{name: "leap day", year: 2024, month: time.February, day: 29, exists: true},
		{name: "no leap day", year: 2023, month: time.February, day: 29, exists: false},
		{name: "thirty first of february", year: 2024, month: time.February, day: 31, exists: false},
		{name: "thirty first of april", year: 2024, month: time.April, day: 31, exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := timezone.Date(tt.year, tt.month, tt.day)

			assert.Equal(t, tt.exists, ok)

			if ok {
				assert.Equal(t, tt.day, got.Day())
				assert.Equal(t, 0, got.Hour())
			}
		})
	}
}

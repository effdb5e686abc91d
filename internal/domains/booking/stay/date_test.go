package stay_test

import (
	"testing"
	"time"

	"lodge/internal/domains/booking/stay"
	"lodge/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func mustDate(t *testing.T, text string) stay.Date {
	t.Helper()

	date, err := stay.ParseDate(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}

	return date
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "valid date", input: "10/05/2024", want: "10/05/2024"},
		{name: "surrounding whitespace", input: "  01/12/2025 ", want: "01/12/2025"},
		{name: "leap day", input: "29/02/2024", want: "29/02/2024"},
		{name: "single digit day", input: "1/05/2024", wantErr: stay.ErrDateFormat},
		{name: "iso layout", input: "2024-05-10", wantErr: stay.ErrDateFormat},
		{name: "day out of range", input: "32/01/2024", wantErr: stay.ErrDateFormat},
		{name: "day zero", input: "00/01/2024", wantErr: stay.ErrDateFormat},
		{name: "month out of range", input: "10/13/2024", wantErr: stay.ErrDateFormat},
		{name: "two digit year", input: "10/05/24", wantErr: stay.ErrDateFormat},
		{name: "inner whitespace", input: "10/ 05/2024", wantErr: stay.ErrDateFormat},
		{name: "empty", input: "", wantErr: stay.ErrDateFormat},
		{name: "thirty first of february", input: "31/02/2024", wantErr: stay.ErrDateNotExist},
		{name: "no leap day", input: "29/02/2023", wantErr: stay.ErrDateNotExist},
		{name: "thirty first of june", input: "31/06/2024", wantErr: stay.ErrDateNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stay.ParseDate(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsZero())

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, 0, got.Time().Hour())
		})
	}
}

func TestDate_Timestamp(t *testing.T) {
	assert.Equal(t, "2024-05-10 00:00:00", mustDate(t, "10/05/2024").Timestamp())
	assert.Equal(t, "2025-01-01 00:00:00", mustDate(t, "01/01/2025").Timestamp())
}

func TestDate_Compare(t *testing.T) {
	first := mustDate(t, "10/05/2024")
	second := mustDate(t, "11/05/2024")

	assert.True(t, first.Before(second))
	assert.True(t, second.After(first))
	assert.True(t, first.Equal(mustDate(t, " 10/05/2024")))
	assert.False(t, first.Before(first))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "three nights", start: "10/05/2024", end: "13/05/2024", want: 3},
		{name: "same day", start: "10/05/2024", end: "10/05/2024", want: 0},
		{name: "reversed", start: "13/05/2024", end: "10/05/2024", want: -3},
		{name: "across february in a leap year", start: "28/02/2024", end: "01/03/2024", want: 2},
		{name: "across years", start: "30/12/2024", end: "02/01/2025", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stay.DaysBetween(mustDate(t, tt.start), mustDate(t, tt.end)))
		})
	}
}

// inZone runs the test with the application timezone set to loc.
func inZone(t *testing.T, loc *time.Location) {
	t.Helper()

	previous := timezone.SetLocation(loc)
	t.Cleanup(func() { timezone.SetLocation(previous) })
}

func TestDateOf(t *testing.T) {
	t.Run("day is taken in the application timezone", func(t *testing.T) {
		inZone(t, time.FixedZone("WEST", 60*60))

		stored := mustDate(t, "15/05/2024").Time().In(time.UTC)

		assert.Equal(t, 14, stored.Day())
		assert.Equal(t, "15/05/2024", stay.DateOf(stored).String())
		assert.True(t, mustDate(t, "15/05/2024").Equal(stay.DateOf(stored)))
	})

	t.Run("zone east of the application", func(t *testing.T) {
		lateEvening := time.Date(2024, 5, 15, 23, 30, 0, 0, time.FixedZone("UTC+9", 9*60*60))

		assert.Equal(t, "15/05/2024", stay.DateOf(lateEvening).String())
	})

	t.Run("zero", func(t *testing.T) {
		assert.True(t, stay.DateOf(time.Time{}).IsZero())
		assert.Equal(t, "", stay.DateOf(time.Time{}).String())
	})
}

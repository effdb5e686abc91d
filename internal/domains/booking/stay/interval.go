package stay

import (
	"errors"
	"slices"
	"time"
)

var ErrEmptyInterval = errors.New("start date must be earlier than end date")

// Interval is a stay from Start (check-in) up to End (check-out).
type Interval struct {
	Start Date
	End   Date
}

// NewInterval parses both dates and requires Start to be strictly before End.
func NewInterval(startText, endText string) (Interval, error) {
	start, err := ParseDate(startText)
	if err != nil {
		return Interval{}, err
	}

	end, err := ParseDate(endText)
	if err != nil {
		return Interval{}, err
	}

	if !start.Before(end) {
		return Interval{}, ErrEmptyInterval
	}

	return Interval{Start: start, End: end}, nil
}

func (i Interval) resolved() bool {
	return !i.Start.IsZero() && !i.End.IsZero()
}

// Overlaps reports whether both intervals share more than a boundary day.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// ExistingBooking is a persisted stay of the cabin being booked.
type ExistingBooking struct {
	ID        string    `json:"id"`
	CabinID   string    `json:"cabin_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (b ExistingBooking) Interval() Interval {
	return Interval{Start: DateOf(b.StartDate), End: DateOf(b.EndDate)}
}

// HasConflict reports whether candidate overlaps any existing booking. An unresolved
// candidate or an empty snapshot never conflicts.
func HasConflict(candidate Interval, existing []ExistingBooking) bool {
	if !candidate.resolved() || len(existing) == 0 {
		return false
	}

	return slices.ContainsFunc(existing, func(booking ExistingBooking) bool {
		return candidate.Overlaps(booking.Interval())
	})
}

// CheckConflict is HasConflict over dd/mm/yyyy text; unparseable dates never conflict.
func CheckConflict(startText, endText string, existing []ExistingBooking) bool {
	start, err := ParseDate(startText)
	if err != nil {
		return false
	}

	end, err := ParseDate(endText)
	if err != nil {
		return false
	}

	return HasConflict(Interval{Start: start, End: end}, existing)
}

// Snapshot is the set of bookings of one cabin read for a validation pass.
type Snapshot struct {
	CabinID  string            `json:"cabin_id"`
	Bookings []ExistingBooking `json:"bookings"`
}

// NewSnapshot copies the bookings that belong to cabinID.
func NewSnapshot(cabinID string, bookings []ExistingBooking) Snapshot {
	own := make([]ExistingBooking, 0, len(bookings))

	for _, booking := range bookings {
		if booking.CabinID == "" || booking.CabinID == cabinID {
			own = append(own, booking)
		}
	}

	return Snapshot{CabinID: cabinID, Bookings: own}
}

// For returns the snapshot's bookings when it was read for cabinID, and nothing otherwise,
// so a snapshot of a previously selected cabin is never checked against a new one.
func (s Snapshot) For(cabinID string) ([]ExistingBooking, bool) {
	if s.CabinID != cabinID {
		return nil, false
	}

	return s.Bookings, true
}

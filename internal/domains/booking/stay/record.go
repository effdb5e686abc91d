package stay

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusUnconfirmed Status = "unconfirmed"
	StatusCheckedIn   Status = "checked-in"
	StatusCheckedOut  Status = "checked-out"
)

// Valid reports whether s is one of the known booking statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnconfirmed, StatusCheckedIn, StatusCheckedOut:
		return true
	}

	return false
}

var ErrValidation = errors.New("booking dates are not valid")

// Form holds the booking fields entered by staff.
type Form struct {
	CabinID      string
	StartDate    string
	EndDate      string
	NumGuests    int
	ExtrasPrice  float64
	Observations *string
	Status       Status
	HasBreakfast bool
	IsPaid       bool
}

// Record is the booking handed to persistence.
type Record struct {
	GuestID      string
	CabinID      string
	StartDate    string
	EndDate      string
	NumNights    int
	NumGuests    int
	CabinPrice   float64
	ExtrasPrice  float64
	TotalPrice   float64
	Status       Status
	HasBreakfast bool
	IsPaid       bool
	Observations string
}

// BuildRecord validates the form's dates against the snapshot and, when every rule passes,
// prices the stay and assembles the record. The report is returned either way.
func BuildRecord(form Form, guestID string, rate CabinRate, existing []ExistingBooking, now time.Time) (Record, Report, error) {
	report := Validate(Input{StartDate: form.StartDate, EndDate: form.EndDate, Existing: existing}, now)
	if !report.Valid() {
		return Record{}, report, fmt.Errorf("%w: %s", ErrValidation, report)
	}

	interval, err := NewInterval(form.StartDate, form.EndDate)
	if err != nil {
		return Record{}, report, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	pricing := DerivePricing(rate, interval.Start, interval.End, form.ExtrasPrice)

	status := form.Status
	if status == "" {
		status = StatusUnconfirmed
	}

	observations := ""
	if form.Observations != nil {
		observations = *form.Observations
	}

	return Record{
		GuestID:      guestID,
		CabinID:      form.CabinID,
		StartDate:    interval.Start.Timestamp(),
		EndDate:      interval.End.Timestamp(),
		NumNights:    pricing.NumNights,
		NumGuests:    form.NumGuests,
		CabinPrice:   pricing.CabinPrice,
		ExtrasPrice:  form.ExtrasPrice,
		TotalPrice:   pricing.TotalPrice,
		Status:       status,
		HasBreakfast: form.HasBreakfast,
		IsPaid:       form.IsPaid,
		Observations: observations,
	}, report, nil
}

package model

import (
	"time"

	"lodge/internal/domains/booking/stay"
	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldGuestID      = "guest_id"
	FieldCabinID      = "cabin_id"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldStatus       = "status"
	FieldIsPaid       = "is_paid"
	FieldTotalPrice   = "total_price"
	FieldNumNights    = "num_nights"
	FieldObservations = "observations"
)

type Booking struct {
	ID           string    `db:"id"`
	GuestID      string    `db:"guest_id"`
	CabinID      string    `db:"cabin_id"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	NumNights    int       `db:"num_nights"`
	NumGuests    int       `db:"num_guests"`
	CabinPrice   float64   `db:"cabin_price"`
	ExtrasPrice  float64   `db:"extras_price"`
	TotalPrice   float64   `db:"total_price"`
	Status       string    `db:"status"`
	HasBreakfast bool      `db:"has_breakfast"`
	IsPaid       bool      `db:"is_paid"`
	Observations string    `db:"observations"`
	CabinName    string    `column:"name"      db:"cabin_name"  table:"cabins"`
	GuestName    string    `column:"full_name" db:"guest_name"  table:"guests"`
	GuestEmail   string    `column:"email"     db:"guest_email" table:"guests"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN cabins ON cabins.id = bookings.cabin_id LEFT JOIN guests ON guests.id = bookings.guest_id"
}

// Existing is the booking as seen by overlap checks.
func (b Booking) Existing() stay.ExistingBooking {
	return stay.ExistingBooking{
		ID:        b.ID,
		CabinID:   b.CabinID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
	}
}

package model

import "lodge/shared/model"

const (
	TableName  = "settings"
	EntityName = "setting"

	FieldID = "id"

	// SingletonID is the id of the only settings row.
	SingletonID = 1
)

type Setting struct {
	ID                  int     `db:"id"`
	MinBookingLength    int     `db:"min_booking_length"`
	MaxBookingLength    int     `db:"max_booking_length"`
	MaxGuestsPerBooking int     `db:"max_guests_per_booking"`
	BreakfastPrice      float64 `db:"breakfast_price"`
	model.Metadata
}

package dto

import (
	"lodge/internal/domains/setting/model"
	gDto "lodge/shared/dto"
)

type UpdateSettingRequest struct {
	MinBookingLength    *int     `db:"min_booking_length"     json:"minBookingLength"    validate:"omitempty,gte=1"`
	MaxBookingLength    *int     `db:"max_booking_length"     json:"maxBookingLength"    validate:"omitempty,gte=1"`
	MaxGuestsPerBooking *int     `db:"max_guests_per_booking" json:"maxGuestsPerBooking" validate:"omitempty,gte=1"`
	BreakfastPrice      *float64 `db:"breakfast_price"        json:"breakfastPrice"      validate:"omitempty,gte=0"`
}

// BookingLengthValid reports whether the minimum stay is not longer than the maximum once the
// update is applied to current.
func (u *UpdateSettingRequest) BookingLengthValid(current model.Setting) bool {
	minLength, maxLength := current.MinBookingLength, current.MaxBookingLength

	if u.MinBookingLength != nil {
		minLength = *u.MinBookingLength
	}

	if u.MaxBookingLength != nil {
		maxLength = *u.MaxBookingLength
	}

	return minLength <= maxLength
}

type SettingResponse struct {
	MinBookingLength    int     `json:"minBookingLength"`
	MaxBookingLength    int     `json:"maxBookingLength"`
	MaxGuestsPerBooking int     `json:"maxGuestsPerBooking"`
	BreakfastPrice      float64 `json:"breakfastPrice"`
	gDto.Metadata
}

func (r *SettingResponse) FromModel(model model.Setting) {
	r.MinBookingLength = model.MinBookingLength
	r.MaxBookingLength = model.MaxBookingLength
	r.MaxGuestsPerBooking = model.MaxGuestsPerBooking
	r.BreakfastPrice = model.BreakfastPrice
	r.Metadata.FromModel(model.Metadata)
}

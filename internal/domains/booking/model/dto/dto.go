package dto

import (
	"fmt"
	"strings"
	"time"

	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/stay"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	NationalID   string  `json:"nationalID"   validate:"required"                                                message:"This field is required"`
	CabinID      string  `json:"cabinID"      validate:"required"                                                message:"This field is required"`
	StartDate    string  `json:"startDate"    validate:"required"                                                message:"This field is required"`
	EndDate      string  `json:"endDate"      validate:"required"                                                message:"This field is required"`
	NumGuests    int     `json:"numGuests"    validate:"gte=1"                                                   message:"Guest should be at least 1"`
	ExtrasPrice  float64 `json:"extrasPrice"  validate:"gte=0"                                                   message:"Extras price is not a discount"`
	Status       string  `json:"status"       validate:"omitempty,oneof=unconfirmed checked-in checked-out"`
	HasBreakfast bool    `json:"hasBreakfast"`
	IsPaid       bool    `json:"isPaid"`
	Observations *string `json:"observations" validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) Form() stay.Form {
	return stay.Form{
		CabinID:      c.CabinID,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		NumGuests:    c.NumGuests,
		ExtrasPrice:  c.ExtrasPrice,
		Observations: c.Observations,
		Status:       stay.Status(c.Status),
		HasBreakfast: c.HasBreakfast,
		IsPaid:       c.IsPaid,
	}
}

// ToModel turns a validated record into the row to insert.
func ToModel(record stay.Record, user string) (model.Booking, error) {
	start, err := parseTimestamp(record.StartDate)
	if err != nil {
		return model.Booking{}, err
	}

	end, err := parseTimestamp(record.EndDate)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:           uuid.NewString(),
		GuestID:      record.GuestID,
		CabinID:      record.CabinID,
		StartDate:    start,
		EndDate:      end,
		NumNights:    record.NumNights,
		NumGuests:    record.NumGuests,
		CabinPrice:   record.CabinPrice,
		ExtrasPrice:  record.ExtrasPrice,
		TotalPrice:   record.TotalPrice,
		Status:       string(record.Status),
		HasBreakfast: record.HasBreakfast,
		IsPaid:       record.IsPaid,
		Observations: record.Observations,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(stay.TimestampLayout, value, timezone.GetLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid booking timestamp %q: %w", value, err)
	}

	return parsed, nil
}

// QuoteBookingRequest carries the fields the booking form recomputes on every change. Any of
// them may still be empty.
type QuoteBookingRequest struct {
	CabinID     string   `json:"cabinID"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	ExtrasPrice *float64 `json:"extrasPrice" validate:"omitempty,gte=0" message:"Extras price is not a discount"`
}

type QuoteResponse struct {
	Valid      bool              `json:"valid"`
	Errors     map[string]string `json:"errors"`
	Outcomes   []stay.Outcome    `json:"outcomes"`
	NumNights  *int              `json:"numNights"`
	CabinPrice *float64          `json:"cabinPrice"`
	TotalPrice *float64          `json:"totalPrice"`
}

func (q *QuoteResponse) FromReport(report stay.Report, pricing stay.Pricing, priced bool) {
	q.Valid = report.Valid()
	q.Errors = report.Errors()
	q.Outcomes = report.Outcomes

	if priced {
		q.NumNights = &pricing.NumNights
		q.CabinPrice = &pricing.CabinPrice
		q.TotalPrice = &pricing.TotalPrice
	}
}

type UpdateBookingRequest struct {
	Status       *string `db:"status"        json:"status"       validate:"omitempty,oneof=unconfirmed checked-in checked-out"`
	HasBreakfast *bool   `db:"has_breakfast" json:"hasBreakfast"`
	IsPaid       *bool   `db:"is_paid"       json:"isPaid"`
	Observations *string `db:"observations"  json:"observations" validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID           string  `json:"id"`
	GuestID      string  `json:"guestID"`
	GuestName    string  `json:"guestName"`
	GuestEmail   string  `json:"guestEmail"`
	CabinID      string  `json:"cabinID"`
	CabinName    string  `json:"cabinName"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	NumNights    int     `json:"numNights"`
	NumGuests    int     `json:"numGuests"`
	CabinPrice   float64 `json:"cabinPrice"`
	ExtrasPrice  float64 `json:"extrasPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	Status       string  `json:"status"`
	HasBreakfast bool    `json:"hasBreakfast"`
	IsPaid       bool    `json:"isPaid"`
	Observations string  `json:"observations"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.GuestID = model.GuestID
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.CabinID = model.CabinID
	r.CabinName = model.CabinName
	r.StartDate = stay.DateOf(model.StartDate).String()
	r.EndDate = stay.DateOf(model.EndDate).String()
	r.NumNights = model.NumNights
	r.NumGuests = model.NumGuests
	r.CabinPrice = model.CabinPrice
	r.ExtrasPrice = model.ExtrasPrice
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.HasBreakfast = model.HasBreakfast
	r.IsPaid = model.IsPaid
	r.Observations = model.Observations
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CabinBookingsResponse struct {
	CabinID  string                 `json:"cabinID"`
	Bookings []stay.ExistingBooking `json:"bookings"`
}

// Event is published to the bookings topic when a booking is created or deleted.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	CabinID    string    `json:"cabin_id"`
	GuestID    string    `json:"guest_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, booking model.Booking, currency string) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		CabinID:    booking.CabinID,
		GuestID:    booking.GuestID,
		StartDate:  stay.DateOf(booking.StartDate).String(),
		EndDate:    stay.DateOf(booking.EndDate).String(),
		TotalPrice: booking.TotalPrice,
		Currency:   strings.ToUpper(currency),
		OccurredAt: timezone.Now(),
	}
}

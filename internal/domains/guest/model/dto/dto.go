package dto

import (
	"strings"

	"lodge/internal/domains/guest/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateGuestRequest struct {
	FullName    string `json:"fullName"    validate:"required,max=150" message:"This field is required"`
	Email       string `json:"email"       validate:"required,email"   message:"Entered value does not match email format"`
	NationalID  string `json:"nationalID"  validate:"required,max=50"  message:"This field is required"`
	Nationality string `json:"nationality" validate:"required"         message:"This field is required"`
}

// Trim removes surrounding whitespace from every text field.
func (c *CreateGuestRequest) Trim() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.TrimSpace(c.Email)
	c.NationalID = strings.TrimSpace(c.NationalID)
	c.Nationality = strings.TrimSpace(c.Nationality)
}

func (c *CreateGuestRequest) ToModel(user, countryFlag string) model.Guest {
	return model.Guest{
		ID:          uuid.NewString(),
		FullName:    c.FullName,
		Email:       c.Email,
		NationalID:  c.NationalID,
		Nationality: c.Nationality,
		CountryFlag: countryFlag,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateGuestRequest struct {
	FullName    string `db:"full_name"   json:"fullName"    validate:"omitempty,max=150"`
	Email       string `db:"email"       json:"email"       validate:"omitempty,email"   message:"Entered value does not match email format"`
	NationalID  string `db:"national_id" json:"nationalID"  validate:"omitempty,max=50"`
	Nationality string `db:"nationality" json:"nationality"`
}

func (u *UpdateGuestRequest) Trim() {
	u.FullName = strings.TrimSpace(u.FullName)
	u.Email = strings.TrimSpace(u.Email)
	u.NationalID = strings.TrimSpace(u.NationalID)
	u.Nationality = strings.TrimSpace(u.Nationality)
}

type GuestResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	NationalID  string `json:"nationalID"`
	Nationality string `json:"nationality"`
	CountryFlag string `json:"countryFlag"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Email = model.Email
	r.NationalID = model.NationalID
	r.Nationality = model.Nationality
	r.CountryFlag = model.CountryFlag
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}

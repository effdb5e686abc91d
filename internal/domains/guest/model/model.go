package model

import "lodge/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID          = "id"
	FieldFullName    = "full_name"
	FieldEmail       = "email"
	FieldNationalID  = "national_id"
	FieldNationality = "nationality"
	FieldCountryFlag = "country_flag"
)

type Guest struct {
	ID          string `db:"id"`
	FullName    string `db:"full_name"`
	Email       string `db:"email"`
	NationalID  string `db:"national_id"`
	Nationality string `db:"nationality"`
	CountryFlag string `db:"country_flag"`
	model.Metadata
}

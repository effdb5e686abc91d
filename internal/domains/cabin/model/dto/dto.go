package dto

import (
	"mime/multipart"

	"lodge/internal/domains/cabin/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateCabinRequest struct {
	Name         string                `json:"name"         validate:"required,max=100"              message:"This field is required"`
	MaxCapacity  int                   `json:"maxCapacity"  validate:"gte=1"                         message:"Capacity should be at least 1"`
	RegularPrice float64               `json:"regularPrice" validate:"gte=1"                         message:"Price should be at least 1"`
	Discount     float64               `json:"discount"     validate:"gte=0,ltefield=RegularPrice"   message:"Discount should be less than regular price"`
	Description  string                `json:"description"  validate:"required"                      message:"This field is required"`
	Image        *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

func (c *CreateCabinRequest) ToModel(user string, imageURL string) model.Cabin {
	return model.Cabin{
		ID:           uuid.NewString(),
		Name:         c.Name,
		MaxCapacity:  c.MaxCapacity,
		RegularPrice: c.RegularPrice,
		Discount:     c.Discount,
		Description:  c.Description,
		Image:        imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateCabinRequest is a partial update; nil fields keep their stored value.
type UpdateCabinRequest struct {
	Name         string                `db:"name"          json:"name"         validate:"omitempty,max=100"`
	MaxCapacity  *int                  `db:"max_capacity"  json:"maxCapacity"  validate:"omitempty,gte=1"  message:"Capacity should be at least 1"`
	RegularPrice *float64              `db:"regular_price" json:"regularPrice" validate:"omitempty,gte=1"  message:"Price should be at least 1"`
	Discount     *float64              `db:"discount"      json:"discount"     validate:"omitempty,gte=0"`
	Description  string                `db:"description"   json:"description"`
	Image        *multipart.FileHeader `db:"-"             json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=1"`
	ImageFile    multipart.File        `db:"-"             json:"-"`
}

// DiscountWithin reports whether the cabin's discount stays within its regular price once the
// update is applied to current.
func (u *UpdateCabinRequest) DiscountWithin(current model.Cabin) bool {
	regular, discount := current.RegularPrice, current.Discount

	if u.RegularPrice != nil {
		regular = *u.RegularPrice
	}

	if u.Discount != nil {
		discount = *u.Discount
	}

	return discount <= regular
}

type CabinResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MaxCapacity  int     `json:"maxCapacity"`
	RegularPrice float64 `json:"regularPrice"`
	Discount     float64 `json:"discount"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	gDto.Metadata
}

func (r *CabinResponse) FromModel(model model.Cabin) {
	r.ID = model.ID
	r.Name = model.Name
	r.MaxCapacity = model.MaxCapacity
	r.RegularPrice = model.RegularPrice
	r.Discount = model.Discount
	r.Description = model.Description
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetCabinsResponse struct {
	Cabins    []CabinResponse `json:"cabins"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetCabinsResponse) FromModels(models []model.Cabin, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cabins = make([]CabinResponse, len(models))
	for i, mod := range models {
		r.Cabins[i].FromModel(mod)
	}
}

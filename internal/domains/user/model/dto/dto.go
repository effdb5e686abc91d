package dto

import (
	"time"

	"lodge/internal/domains/user/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	"lodge/shared/timezone"
)

type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"fullName" validate:"omitempty,min=2,max=100"`
	Role     *string `db:"role"      json:"role"     validate:"omitempty,oneof=admin staff"`
	Active   *bool   `db:"active"    json:"active"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	LastLogin string `json:"lastLogin,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Role = user.Role
	r.Active = user.Active

	if user.LastLogin != nil {
		r.LastLogin = timezone.Format(*user.LastLogin, time.RFC3339)
	}

	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

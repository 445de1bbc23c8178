package dto

import (
	"time"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

type CreateVenueRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Address  string `json:"address" binding:"omitempty,max=500"`
	City     string `json:"city" binding:"omitempty,max=100"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

func (r *CreateVenueRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "name is required"
	}
	if r.Capacity <= 0 {
		return false, "capacity must be greater than 0"
	}
	return true, ""
}

type UpdateVenueRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	City     *string `json:"city" binding:"omitempty,max=100"`
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
}

func (r *UpdateVenueRequest) Validate() (bool, string) {
	if r.Name == nil && r.Address == nil && r.City == nil && r.Capacity == nil {
		return false, "at least one field must be provided"
	}
	if r.Name != nil && *r.Name == "" {
		return false, "name must not be empty"
	}
	if r.Capacity != nil && *r.Capacity <= 0 {
		return false, "capacity must be greater than 0"
	}
	return true, ""
}

type VenueResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToVenueResponse(v *domain.Venue) *VenueResponse {
	return &VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		City:      v.City,
		Capacity:  v.Capacity,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type VenueListFilter struct {
	City   string `form:"city"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

func (f *VenueListFilter) SetDefaults() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

package dto

import (
	"time"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

type CreateTierRequest struct {
	Name                     string  `json:"name" binding:"required,min=1,max=100"`
	Description              string  `json:"description" binding:"omitempty,max=500"`
	Price                    float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity                 int     `json:"quantity" binding:"required,gt=0"`
	HideUntilPreviousSoldOut bool    `json:"hide_until_previous_sold_out"`
}

func (r *CreateTierRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "name is required"
	}
	if r.Quantity <= 0 {
		return false, "quantity must be greater than 0"
	}
	if r.Price < 0 {
		return false, "price must not be negative"
	}
	return true, ""
}

func (r *CreateTierRequest) ToTier() domain.TicketTier {
	return domain.TicketTier{
		Name:                     r.Name,
		Description:              r.Description,
		PriceCents:               domain.PriceCentsFromDollars(r.Price),
		Quantity:                 r.Quantity,
		HideUntilPreviousSoldOut: r.HideUntilPreviousSoldOut,
	}
}

type UpdateTierRequest struct {
	Name                     *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description              *string  `json:"description" binding:"omitempty,max=500"`
	Price                    *float64 `json:"price"`
	Quantity                 *int     `json:"quantity"`
	HideUntilPreviousSoldOut *bool    `json:"hide_until_previous_sold_out"`
}

func (r *UpdateTierRequest) Validate() (bool, string) {
	if r.Name == nil && r.Description == nil && r.Price == nil &&
		r.Quantity == nil && r.HideUntilPreviousSoldOut == nil {
		return false, "at least one field must be provided"
	}
	if r.Name != nil && *r.Name == "" {
		return false, "name must not be empty"
	}
	return true, ""
}

func (r *UpdateTierRequest) ToPatch() domain.TierPatch {
	patch := domain.TierPatch{
		Name:                     r.Name,
		Description:              r.Description,
		Quantity:                 r.Quantity,
		HideUntilPreviousSoldOut: r.HideUntilPreviousSoldOut,
	}
	if r.Price != nil {
		cents := domain.PriceCentsFromDollars(*r.Price)
		patch.PriceCents = &cents
	}
	return patch
}

type TierResponse struct {
	ID                       string    `json:"id"`
	EventID                  string    `json:"event_id,omitempty"`
	Name                     string    `json:"name"`
	Description              string    `json:"description,omitempty"`
	PriceCents               int64     `json:"price_cents"`
	Quantity                 int       `json:"quantity"`
	HideUntilPreviousSoldOut bool      `json:"hide_until_previous_sold_out"`
	HasOrders                bool      `json:"has_orders"`
	SortOrder                int       `json:"sort_order"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func ToTierResponse(t *domain.TicketTier) *TierResponse {
	return &TierResponse{
		ID:                       t.ID,
		EventID:                  t.EventID,
		Name:                     t.Name,
		Description:              t.Description,
		PriceCents:               t.PriceCents,
		Quantity:                 t.Quantity,
		HideUntilPreviousSoldOut: t.HideUntilPreviousSoldOut,
		HasOrders:                t.HasOrders,
		SortOrder:                t.SortOrder,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}

func ToTierResponses(tiers domain.TierList) []*TierResponse {
	out := make([]*TierResponse, 0, len(tiers))
	for i := range tiers {
		out = append(out, ToTierResponse(&tiers[i]))
	}
	return out
}

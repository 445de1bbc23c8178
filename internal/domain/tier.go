package domain

import (
	"math"
	"time"
)

// Tier count bounds for a single event
const (
	MinTiersPerEvent = 1
	MaxTiersPerEvent = 5
)

// TicketTier represents a named batch of tickets at a fixed price with its
// own inventory count. Ordering within an event is positional (SortOrder
// mirrors the slice index once persisted).
type TicketTier struct {
	ID          string `json:"id,omitempty"` // empty until persisted
	EventID     string `json:"event_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Quantity    int    `json:"quantity"`
	// HideUntilPreviousSoldOut hides the tier from buyers until the
	// previous tier (by position) is exhausted.
	HideUntilPreviousSoldOut bool `json:"hide_until_previous_sold_out"`
	// HasOrders marks a tier that is already referenced by orders; such
	// a tier must not be removable.
	HasOrders bool       `json:"has_orders,omitempty"`
	SortOrder int        `json:"sort_order"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// TierList is an ordered list of ticket tiers. All mutating operations
// return a new slice; the receiver is never modified in place.
type TierList []TicketTier

// NewBlankTier returns an empty tier ready for editing
func NewBlankTier() TicketTier {
	return TicketTier{
		Name:                     "",
		PriceCents:               0,
		Quantity:                 0,
		HideUntilPreviousSoldOut: false,
	}
}

// Add appends a blank tier. It fails with ErrTierLimit once the list holds
// MaxTiersPerEvent entries, leaving the list unchanged.
func (l TierList) Add() (TierList, error) {
	if len(l) >= MaxTiersPerEvent {
		return l, ErrTierLimit
	}
	next := make(TierList, len(l), len(l)+1)
	copy(next, l)
	tier := NewBlankTier()
	tier.SortOrder = len(l)
	return append(next, tier), nil
}

// Remove deletes the tier at index i. It fails with ErrTierMinimum when the
// result would be empty, ErrTierHasOrders when the target is referenced by
// orders, and ErrTierIndexInvalid when i is out of range. The list is
// unchanged on every failure.
func (l TierList) Remove(i int) (TierList, error) {
	if i < 0 || i >= len(l) {
		return l, ErrTierIndexInvalid
	}
	if len(l) <= MinTiersPerEvent {
		return l, ErrTierMinimum
	}
	if l[i].HasOrders {
		return l, ErrTierHasOrders
	}
	next := make(TierList, 0, len(l)-1)
	next = append(next, l[:i]...)
	next = append(next, l[i+1:]...)
	for j := range next {
		next[j].SortOrder = j
	}
	return next, nil
}

// TierPatch is a partial update of a single tier. Nil fields are left
// untouched, which also models the transient empty-input state: a cleared
// quantity box commits nothing until a value is entered.
type TierPatch struct {
	Name                     *string
	Description              *string
	PriceCents               *int64
	Quantity                 *int
	HideUntilPreviousSoldOut *bool
}

// Update applies a patch to the tier at index i, clamping numeric fields to
// their domain minimums: price floors at 0 cents, quantity floors at 1.
func (l TierList) Update(i int, patch TierPatch) (TierList, error) {
	if i < 0 || i >= len(l) {
		return l, ErrTierIndexInvalid
	}
	next := make(TierList, len(l))
	copy(next, l)
	tier := &next[i]

	if patch.Name != nil {
		tier.Name = *patch.Name
	}
	if patch.Description != nil {
		tier.Description = *patch.Description
	}
	if patch.PriceCents != nil {
		cents := *patch.PriceCents
		if cents < 0 {
			cents = 0
		}
		tier.PriceCents = cents
	}
	if patch.Quantity != nil {
		qty := *patch.Quantity
		if qty < 1 {
			qty = 1
		}
		tier.Quantity = qty
	}
	if patch.HideUntilPreviousSoldOut != nil {
		tier.HideUntilPreviousSoldOut = *patch.HideUntilPreviousSoldOut
	}
	return next, nil
}

// PriceCentsFromDollars converts a dollar amount to cents, rounding to the
// nearest cent and flooring at zero.
func PriceCentsFromDollars(dollars float64) int64 {
	cents := int64(math.Round(dollars * 100))
	if cents < 0 {
		return 0
	}
	return cents
}

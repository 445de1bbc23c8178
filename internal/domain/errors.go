package domain

import "errors"

// Domain errors
var (
	// Tier list errors
	ErrTierLimit        = errors.New("tier limit reached")
	ErrTierMinimum      = errors.New("at least one tier is required")
	ErrTierHasOrders    = errors.New("tier has orders and cannot be removed")
	ErrTierIndexInvalid = errors.New("tier index out of range")

	// Draft errors
	ErrInvalidDraftPhase = errors.New("invalid draft phase")
	ErrDraftSubmitted    = errors.New("draft has already been submitted")

	// Event errors
	ErrInvalidEventStatus = errors.New("invalid event status transition")

	// Entity validation errors
	ErrInvalidTenantID = errors.New("invalid tenant id")
	ErrInvalidVenueID  = errors.New("invalid venue id")
	ErrInvalidCapacity = errors.New("capacity cannot be negative")
)

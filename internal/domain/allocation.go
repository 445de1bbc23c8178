package domain

import "fmt"

// AllocationStatus describes how the total ticket allocation compares to
// the venue capacity
type AllocationStatus string

const (
	// AllocationNone means no capacity is known, so no comparison applies
	AllocationNone AllocationStatus = "none"
	// AllocationOver means more tickets are allocated than the venue holds
	AllocationOver AllocationStatus = "over"
	// AllocationUnder means tickets remain unallocated
	AllocationUnder AllocationStatus = "under"
	// AllocationExact means the allocation matches venue capacity
	AllocationExact AllocationStatus = "exact"
)

// Allocation is the result of comparing a tier list against a venue
// capacity. Over- and under-allocation are advisory states, never errors.
type Allocation struct {
	TotalAllocated int              `json:"total_allocated"`
	VenueCapacity  int              `json:"venue_capacity"`
	Status         AllocationStatus `json:"status"`
	Message        string           `json:"message,omitempty"`
}

// TotalAllocated sums ticket quantities across all tiers
func TotalAllocated(tiers TierList) int {
	total := 0
	for _, t := range tiers {
		total += t.Quantity
	}
	return total
}

// Allocate computes the allocation state for a tier list against a venue
// capacity. Message selection, first match wins: no capacity, over, under,
// exact.
func Allocate(tiers TierList, venueCapacity int) Allocation {
	total := TotalAllocated(tiers)
	a := Allocation{
		TotalAllocated: total,
		VenueCapacity:  venueCapacity,
	}

	switch {
	case venueCapacity <= 0:
		a.Status = AllocationNone
	case total > venueCapacity:
		a.Status = AllocationOver
		a.Message = fmt.Sprintf("%d over capacity", total-venueCapacity)
	case total < venueCapacity:
		a.Status = AllocationUnder
		a.Message = fmt.Sprintf("%d tickets remaining", venueCapacity-total)
	default:
		a.Status = AllocationExact
		a.Message = "All tickets allocated"
	}
	return a
}

package domain

import "fmt"

// SeedPolicy selects the default tier configuration seeded when a venue is
// first selected and no tiers exist yet
type SeedPolicy string

const (
	// SeedPolicySingle seeds one GA tier sized to the full venue capacity
	SeedPolicySingle SeedPolicy = "single"
	// SeedPolicySplit seeds three GA tiers splitting capacity as evenly
	// as possible, remainder distributed to the earliest tiers
	SeedPolicySplit SeedPolicy = "split"
)

const splitTierCount = 3

// IsValid checks if the policy is a known SeedPolicy
func (p SeedPolicy) IsValid() bool {
	return p == SeedPolicySingle || p == SeedPolicySplit
}

// SeedTiers builds the default tier list for a venue capacity under the
// given policy. Unknown policies fall back to the single-tier default.
func SeedTiers(policy SeedPolicy, capacity int) TierList {
	if capacity < 0 {
		capacity = 0
	}

	if policy == SeedPolicySplit {
		base := capacity / splitTierCount
		remainder := capacity % splitTierCount
		tiers := make(TierList, splitTierCount)
		for i := range tiers {
			qty := base
			if i < remainder {
				qty++
			}
			tiers[i] = TicketTier{
				Name:       fmt.Sprintf("GA%d", i+1),
				PriceCents: 0,
				Quantity:   qty,
				SortOrder:  i,
			}
		}
		return tiers
	}

	return TierList{{
		Name:       "GA",
		PriceCents: 0,
		Quantity:   capacity,
		SortOrder:  0,
	}}
}

package domain

import (
	"strings"
	"time"
)

// Venue represents a venue entity. Capacity is the maximum attendee count
// and is the target sum for tier quantities.
type Venue struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	City      string     `json:"city"`
	Capacity  int        `json:"capacity"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Validate validates venue fields
func (v *Venue) Validate() error {
	if strings.TrimSpace(v.TenantID) == "" {
		return ErrInvalidTenantID
	}
	if v.Capacity < 0 {
		return ErrInvalidCapacity
	}
	return nil
}

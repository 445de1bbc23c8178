package domain

import "time"

// Activity actions recorded by this service
const (
	ActivityEventCreated   = "event.created"
	ActivityEventUpdated   = "event.updated"
	ActivityEventPublished = "event.published"
	ActivityEventDeleted   = "event.deleted"
	ActivityTierCreated    = "tier.created"
	ActivityTierUpdated    = "tier.updated"
	ActivityTierDeleted    = "tier.deleted"
	ActivityVenueCreated   = "venue.created"
	ActivityVenueUpdated   = "venue.updated"
	ActivityVenueDeleted   = "venue.deleted"
	ActivityDraftSubmitted = "draft.submitted"
)

// ActivityRecord is one entry in the tenant activity log
type ActivityRecord struct {
	ID          string            `json:"id"`
	TenantID    string            `json:"tenant_id"`
	ActorID     string            `json:"actor_id"`
	Action      string            `json:"action"`
	SubjectType string            `json:"subject_type"`
	SubjectID   string            `json:"subject_id"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

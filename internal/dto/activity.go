package dto

import (
	"time"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
)

type ActivityListFilter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (f *ActivityListFilter) SetDefaults() {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

type ActivityResponse struct {
	ID          string            `json:"id"`
	ActorID     string            `json:"actor_id"`
	Action      string            `json:"action"`
	SubjectType string            `json:"subject_type"`
	SubjectID   string            `json:"subject_id"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func ToActivityResponse(r *domain.ActivityRecord) *ActivityResponse {
	return &ActivityResponse{
		ID:          r.ID,
		ActorID:     r.ActorID,
		Action:      r.Action,
		SubjectType: r.SubjectType,
		SubjectID:   r.SubjectID,
		Metadata:    r.Metadata,
		CreatedAt:   r.CreatedAt,
	}
}

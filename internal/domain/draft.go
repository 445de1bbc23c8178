package domain

import "time"

// DraftPhase represents the lifecycle phase of an event draft
type DraftPhase string

const (
	DraftPhaseEmpty         DraftPhase = "empty"
	DraftPhaseVenueSelected DraftPhase = "venue_selected"
	DraftPhaseTiersSeeded   DraftPhase = "tiers_seeded"
	DraftPhaseEditing       DraftPhase = "editing"
)

// IsValid checks if the phase is a valid DraftPhase
func (p DraftPhase) IsValid() bool {
	switch p {
	case DraftPhaseEmpty, DraftPhaseVenueSelected, DraftPhaseTiersSeeded, DraftPhaseEditing:
		return true
	}
	return false
}

// String returns the string representation of DraftPhase
func (p DraftPhase) String() string {
	return string(p)
}

// Draft is the single owner of all in-progress event form state. It is
// mutated only through its methods; the lifecycle is an explicit phase
// machine (empty -> venue_selected -> tiers_seeded -> editing) instead of
// being inferred from which fields happen to be populated.
type Draft struct {
	ID       string  `json:"id"`
	TenantID string  `json:"tenant_id"`
	UserID   string  `json:"user_id"`
	EventID  *string `json:"event_id,omitempty"` // set in edit mode

	Title            string     `json:"title"`
	Description      string     `json:"description"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	VenueID          string     `json:"venue_id"`
	HeadlinerID      string     `json:"headliner_id"`
	UndercardArtists []string   `json:"undercard_artists"`
	ImageURL         string     `json:"image_url"`

	VenueCapacity int      `json:"venue_capacity"`
	TicketTiers   TierList `json:"ticket_tiers"`

	Phase DraftPhase `json:"phase"`
	// SeedGeneration guards seeding against stale venue-capacity
	// resolutions: a resolution carries the generation issued when its
	// lookup started and applies only if it still matches.
	SeedGeneration int `json:"seed_generation"`
	// Version increments on every mutation. Writers that read, modify
	// and save a draft use it as an optimistic-concurrency check so a
	// concurrent edit is never overwritten by a stale copy.
	Version int  `json:"version"`
	Dirty   bool `json:"dirty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft creates an empty draft owned by the given tenant and user
func NewDraft(id, tenantID, userID string) *Draft {
	now := time.Now()
	return &Draft{
		ID:               id,
		TenantID:         tenantID,
		UserID:           userID,
		UndercardArtists: []string{},
		TicketTiers:      TierList{},
		Phase:            DraftPhaseEmpty,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// SelectVenue records the venue choice and issues a new seed generation.
// The returned generation must be passed back to ApplyCapacity once the
// capacity lookup resolves.
func (d *Draft) SelectVenue(venueID string) int {
	d.VenueID = venueID
	if d.Phase == DraftPhaseEmpty {
		d.Phase = DraftPhaseVenueSelected
	}
	d.SeedGeneration++
	d.touch()
	return d.SeedGeneration
}

// ApplyCapacity applies a resolved venue capacity under the generation
// guard. A stale generation (the user re-selected a venue while the lookup
// was in flight) changes nothing. A current generation records the
// capacity, and seeds the given default tiers only when the tier list is
// still empty. Returns true when seeding happened.
func (d *Draft) ApplyCapacity(generation, capacity int, seeded TierList) bool {
	if generation != d.SeedGeneration {
		return false
	}
	d.VenueCapacity = capacity
	d.touch()
	if len(d.TicketTiers) > 0 {
		return false
	}
	d.TicketTiers = seeded
	d.Phase = DraftPhaseTiersSeeded
	return true
}

// AddTier appends a blank tier to the draft
func (d *Draft) AddTier() error {
	next, err := d.TicketTiers.Add()
	if err != nil {
		return err
	}
	d.TicketTiers = next
	d.startEditing()
	return nil
}

// RemoveTier deletes the tier at the given index
func (d *Draft) RemoveTier(i int) error {
	next, err := d.TicketTiers.Remove(i)
	if err != nil {
		return err
	}
	d.TicketTiers = next
	d.startEditing()
	return nil
}

// UpdateTier applies a partial update to the tier at the given index
func (d *Draft) UpdateTier(i int, patch TierPatch) error {
	next, err := d.TicketTiers.Update(i, patch)
	if err != nil {
		return err
	}
	d.TicketTiers = next
	d.startEditing()
	return nil
}

// Allocation computes the current tier allocation against venue capacity
func (d *Draft) Allocation() Allocation {
	return Allocate(d.TicketTiers, d.VenueCapacity)
}

// Reset restores every field to its initial default, keeping only the
// draft's identity and ownership
func (d *Draft) Reset() {
	d.EventID = nil
	d.Title = ""
	d.Description = ""
	d.StartTime = nil
	d.EndTime = nil
	d.VenueID = ""
	d.HeadlinerID = ""
	d.UndercardArtists = []string{}
	d.ImageURL = ""
	d.VenueCapacity = 0
	d.TicketTiers = TierList{}
	d.Phase = DraftPhaseEmpty
	d.SeedGeneration++
	d.touch()
}

// MarkSaved clears the dirty flag after a successful autosave flush
func (d *Draft) MarkSaved() {
	d.Dirty = false
}

// MarkDirty flags the draft for the next autosave flush. Callers that set
// detail fields directly must call it to keep the flush cycle honest.
func (d *Draft) MarkDirty() {
	d.touch()
}

// IsEditMode reports whether the draft was seeded from an existing event
func (d *Draft) IsEditMode() bool {
	return d.EventID != nil
}

func (d *Draft) startEditing() {
	d.Phase = DraftPhaseEditing
	d.touch()
}

func (d *Draft) touch() {
	d.Version++
	d.Dirty = true
	d.UpdatedAt = time.Now()
}

package domain

import (
	"errors"
	"testing"
)

func newTestDraft() *Draft {
	return NewDraft("draft-1", "tenant-1", "user-1")
}

func TestNewDraft(t *testing.T) {
	d := newTestDraft()

	if d.Phase != DraftPhaseEmpty {
		t.Errorf("expected phase %s, got %s", DraftPhaseEmpty, d.Phase)
	}
	if len(d.TicketTiers) != 0 {
		t.Errorf("expected no tiers, got %d", len(d.TicketTiers))
	}
	if d.SeedGeneration != 0 {
		t.Errorf("expected generation 0, got %d", d.SeedGeneration)
	}
}

func TestDraftSelectVenue(t *testing.T) {
	d := newTestDraft()

	gen := d.SelectVenue("venue-1")
	if gen != 1 {
		t.Errorf("expected generation 1, got %d", gen)
	}
	if d.Phase != DraftPhaseVenueSelected {
		t.Errorf("expected phase %s, got %s", DraftPhaseVenueSelected, d.Phase)
	}
	if d.VenueID != "venue-1" {
		t.Errorf("expected venue-1, got %s", d.VenueID)
	}
	if !d.Dirty {
		t.Error("expected draft marked dirty")
	}

	// Reselecting bumps the generation again
	gen = d.SelectVenue("venue-2")
	if gen != 2 {
		t.Errorf("expected generation 2, got %d", gen)
	}
}

func TestDraftApplyCapacity(t *testing.T) {
	t.Run("seeds empty tier list", func(t *testing.T) {
		d := newTestDraft()
		gen := d.SelectVenue("venue-1")

		applied := d.ApplyCapacity(gen, 300, SeedTiers(SeedPolicySingle, 300))
		if !applied {
			t.Fatal("expected capacity applied")
		}
		if d.VenueCapacity != 300 {
			t.Errorf("expected capacity 300, got %d", d.VenueCapacity)
		}
		if len(d.TicketTiers) != 1 || d.TicketTiers[0].Quantity != 300 {
			t.Errorf("expected single seeded tier of 300, got %v", d.TicketTiers)
		}
		if d.Phase != DraftPhaseTiersSeeded {
			t.Errorf("expected phase %s, got %s", DraftPhaseTiersSeeded, d.Phase)
		}
	})

	t.Run("stale generation is ignored", func(t *testing.T) {
		d := newTestDraft()
		stale := d.SelectVenue("venue-1")
		fresh := d.SelectVenue("venue-2")

		if d.ApplyCapacity(stale, 500, SeedTiers(SeedPolicySingle, 500)) {
			t.Error("stale apply must be a no-op")
		}
		if d.VenueCapacity != 0 || len(d.TicketTiers) != 0 {
			t.Error("stale apply must not change the draft")
		}

		if !d.ApplyCapacity(fresh, 200, SeedTiers(SeedPolicySingle, 200)) {
			t.Error("expected fresh apply to land")
		}
		if d.VenueCapacity != 200 {
			t.Errorf("expected capacity 200, got %d", d.VenueCapacity)
		}
	})

	t.Run("existing tiers are never reseeded", func(t *testing.T) {
		d := newTestDraft()
		gen := d.SelectVenue("venue-1")
		d.ApplyCapacity(gen, 100, SeedTiers(SeedPolicySingle, 100))

		if err := d.UpdateTier(0, TierPatch{Quantity: intPtr(80)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		gen = d.SelectVenue("venue-2")
		if d.ApplyCapacity(gen, 400, SeedTiers(SeedPolicySingle, 400)) {
			t.Error("populated tier list must not be reseeded")
		}
		if d.VenueCapacity != 400 {
			t.Errorf("expected capacity 400, got %d", d.VenueCapacity)
		}
		if len(d.TicketTiers) != 1 || d.TicketTiers[0].Quantity != 80 {
			t.Errorf("expected edited tier preserved, got %v", d.TicketTiers)
		}
	})
}

func TestDraftTierOperations(t *testing.T) {
	d := newTestDraft()
	gen := d.SelectVenue("venue-1")
	d.ApplyCapacity(gen, 100, SeedTiers(SeedPolicySingle, 100))

	if err := d.AddTier(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Phase != DraftPhaseEditing {
		t.Errorf("expected phase %s after edit, got %s", DraftPhaseEditing, d.Phase)
	}
	if len(d.TicketTiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(d.TicketTiers))
	}

	if err := d.RemoveTier(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.RemoveTier(0); !errors.Is(err, ErrTierMinimum) {
		t.Errorf("expected ErrTierMinimum, got %v", err)
	}
}

func TestDraftAllocation(t *testing.T) {
	d := newTestDraft()
	gen := d.SelectVenue("venue-1")
	d.ApplyCapacity(gen, 100, SeedTiers(SeedPolicySplit, 100))

	alloc := d.Allocation()
	if alloc.Status != AllocationExact {
		t.Errorf("expected exact allocation after seeding, got %s", alloc.Status)
	}

	if err := d.UpdateTier(0, TierPatch{Quantity: intPtr(44)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alloc = d.Allocation()
	if alloc.Status != AllocationOver || alloc.Message != "10 over capacity" {
		t.Errorf("expected 10 over capacity, got %s %q", alloc.Status, alloc.Message)
	}
}

func TestDraftReset(t *testing.T) {
	d := newTestDraft()
	gen := d.SelectVenue("venue-1")
	d.ApplyCapacity(gen, 100, SeedTiers(SeedPolicySingle, 100))
	d.Title = "Summer Fest"

	d.Reset()

	if d.Phase != DraftPhaseEmpty {
		t.Errorf("expected phase %s, got %s", DraftPhaseEmpty, d.Phase)
	}
	if d.Title != "" || d.VenueID != "" || d.VenueCapacity != 0 {
		t.Error("expected fields cleared")
	}
	if len(d.TicketTiers) != 0 {
		t.Errorf("expected tiers cleared, got %d", len(d.TicketTiers))
	}

	// A capacity fetch started before the reset must not land after it
	if d.ApplyCapacity(gen, 100, SeedTiers(SeedPolicySingle, 100)) {
		t.Error("pre-reset generation must be stale")
	}
}

func TestDraftVersionIncrements(t *testing.T) {
	d := newTestDraft()
	if d.Version != 0 {
		t.Errorf("expected new draft at version 0, got %d", d.Version)
	}

	gen := d.SelectVenue("venue-1")
	after := d.Version
	if after != 1 {
		t.Errorf("expected version 1 after venue selection, got %d", after)
	}

	d.ApplyCapacity(gen, 100, SeedTiers(SeedPolicySingle, 100))
	if d.Version != after+1 {
		t.Errorf("expected version bump on capacity apply, got %d", d.Version)
	}

	// Stale generations change nothing, version included
	before := d.Version
	d.ApplyCapacity(gen-1, 200, SeedTiers(SeedPolicySingle, 200))
	if d.Version != before {
		t.Errorf("expected stale apply to leave version at %d, got %d", before, d.Version)
	}

	d.MarkSaved()
	if d.Version != before {
		t.Errorf("expected MarkSaved to leave version at %d, got %d", before, d.Version)
	}

	d.MarkDirty()
	if d.Version != before+1 {
		t.Errorf("expected MarkDirty to bump version, got %d", d.Version)
	}
}

func intPtr(v int) *int { return &v }

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/service"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/middleware"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/response"
)

type stubDraftService struct {
	draft     *domain.Draft
	submitErr error
	event     *domain.Event
	warning   string
}

func (s *stubDraftService) CreateDraft(context.Context, string, string, *dto.CreateDraftRequest) (*domain.Draft, error) {
	return s.draft, nil
}

func (s *stubDraftService) GetDraft(_ context.Context, tenantID, id string) (*domain.Draft, error) {
	if s.draft == nil || s.draft.ID != id || s.draft.TenantID != tenantID {
		return nil, service.ErrDraftNotFound
	}
	return s.draft, nil
}

func (s *stubDraftService) UpdateDraft(context.Context, string, string, *dto.UpdateDraftRequest) (*domain.Draft, error) {
	return s.draft, nil
}

func (s *stubDraftService) SelectVenue(_ context.Context, _, _, venueID string) (*service.SelectVenueResult, error) {
	s.draft.SelectVenue(venueID)
	return &service.SelectVenueResult{Draft: s.draft, Warning: s.warning}, nil
}

func (s *stubDraftService) AddTier(context.Context, string, string) (*domain.Draft, error) {
	if err := s.draft.AddTier(); err != nil {
		return nil, err
	}
	return s.draft, nil
}

func (s *stubDraftService) UpdateTier(_ context.Context, _, _ string, index int, req *dto.UpdateTierRequest) (*domain.Draft, error) {
	if err := s.draft.UpdateTier(index, req.ToPatch()); err != nil {
		return nil, err
	}
	return s.draft, nil
}

func (s *stubDraftService) RemoveTier(_ context.Context, _, _ string, index int) (*domain.Draft, error) {
	if err := s.draft.RemoveTier(index); err != nil {
		return nil, err
	}
	return s.draft, nil
}

func (s *stubDraftService) ResetDraft(context.Context, string, string) (*domain.Draft, error) {
	s.draft.Reset()
	return s.draft, nil
}

func (s *stubDraftService) SubmitDraft(context.Context, string, string, string) (*domain.Event, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.event, nil
}

func (s *stubDraftService) DeleteDraft(context.Context, string, string) error {
	return nil
}

func setupDraftRouter(stub *stubDraftService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Test auth shim stands in for the JWT middleware
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextTenantID, "tenant-1")
		c.Set(middleware.ContextUserID, "user-1")
	})

	h := NewDraftHandler(stub)
	drafts := router.Group("/api/v1/drafts")
	{
		drafts.POST("", h.Create)
		drafts.GET("/:id", h.Get)
		drafts.POST("/:id/venue", h.SelectVenue)
		drafts.POST("/:id/tiers", h.AddTier)
		drafts.PUT("/:id/tiers/:index", h.UpdateTier)
		drafts.DELETE("/:id/tiers/:index", h.RemoveTier)
		drafts.POST("/:id/reset", h.Reset)
		drafts.POST("/:id/submit", h.Submit)
	}
	return router
}

func seededDraft() *domain.Draft {
	d := domain.NewDraft("draft-1", "tenant-1", "user-1")
	gen := d.SelectVenue("venue-1")
	d.ApplyCapacity(gen, 100, domain.SeedTiers(domain.SeedPolicySingle, 100))
	return d
}

func decodeDraft(t *testing.T, body *bytes.Buffer) *dto.DraftResponse {
	t.Helper()
	var resp struct {
		Success bool               `json:"success"`
		Data    *dto.DraftResponse `json:"data"`
	}
	err := json.Unmarshal(body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	return resp.Data
}

func TestDraftHandlerCreateEmptyBody(t *testing.T) {
	stub := &stubDraftService{draft: seededDraft()}
	router := setupDraftRouter(stub)

	// No body at all starts a blank draft
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDraftHandlerCreateMalformedBody(t *testing.T) {
	stub := &stubDraftService{draft: seededDraft()}
	router := setupDraftRouter(stub)

	body := bytes.NewBufferString(`{"event_id":`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftHandlerGet(t *testing.T) {
	stub := &stubDraftService{draft: seededDraft()}
	router := setupDraftRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts/draft-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeDraft(t, w.Body)
	assert.Equal(t, "draft-1", data.ID)
	assert.Equal(t, string(domain.DraftPhaseTiersSeeded), data.Phase)
	assert.Equal(t, "exact", data.Allocation.Status)
	assert.Equal(t, "All tickets allocated", data.Allocation.Message)
}

func TestDraftHandlerGetNotFound(t *testing.T) {
	stub := &stubDraftService{draft: seededDraft()}
	router := setupDraftRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraftHandlerSelectVenueWarning(t *testing.T) {
	stub := &stubDraftService{
		draft:   seededDraft(),
		warning: "venue capacity unavailable, defaulting to 100",
	}
	router := setupDraftRouter(stub)

	body := bytes.NewBufferString(`{"venue_id":"venue-2"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/draft-1/venue", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeDraft(t, w.Body)
	assert.Equal(t, "venue capacity unavailable, defaulting to 100", data.Warning)
}

func TestDraftHandlerUpdateTierAllocation(t *testing.T) {
	stub := &stubDraftService{draft: seededDraft()}
	router := setupDraftRouter(stub)

	// Raise the single tier over capacity
	body := bytes.NewBufferString(`{"quantity":110}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/drafts/draft-1/tiers/0", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeDraft(t, w.Body)
	assert.Equal(t, "over", data.Allocation.Status)
	assert.Equal(t, "10 over capacity", data.Allocation.Message)
}

func TestDraftHandlerRemoveLastTierConflict(t *testing.T) {
	stub := &stubDraftService{draft: seededDraft()}
	router := setupDraftRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/drafts/draft-1/tiers/0", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDraftHandlerTierIndexValidation(t *testing.T) {
	stub := &stubDraftService{draft: seededDraft()}
	router := setupDraftRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/drafts/draft-1/tiers/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftHandlerSubmitFailurePropagatesError(t *testing.T) {
	stub := &stubDraftService{
		draft:     seededDraft(),
		submitErr: errors.New("failed to create event: connection refused"),
	}
	router := setupDraftRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/draft-1/submit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp response.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "failed to create event: connection refused", resp.Error.Message)
}

func TestDraftHandlerSubmitSuccess(t *testing.T) {
	stub := &stubDraftService{
		draft: seededDraft(),
		event: &domain.Event{ID: "event-1", TenantID: "tenant-1", Slug: "show", Title: "Show"},
	}
	router := setupDraftRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/draft-1/submit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

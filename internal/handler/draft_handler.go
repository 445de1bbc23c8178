package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/service"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/middleware"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/response"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/telemetry"
)

type DraftHandler struct {
	drafts service.DraftService
}

func NewDraftHandler(drafts service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

func (h *DraftHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.Create")
	defer span.End()

	// An empty body is a blank draft; only malformed JSON is rejected
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, err.Error())
		return
	}

	tenantID := c.GetString(middleware.ContextTenantID)
	userID := c.GetString(middleware.ContextUserID)
	draft, err := h.drafts.CreateDraft(ctx, tenantID, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.BadRequest(c, "event not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}

	span.SetAttributes(attribute.String("draft.id", draft.ID))
	response.Created(c, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.Get")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	draft, err := h.drafts.GetDraft(ctx, tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.NotFound(c, "draft not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.Update")
	defer span.End()

	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, msg)
		return
	}

	tenantID := c.GetString(middleware.ContextTenantID)
	draft, err := h.drafts.UpdateDraft(ctx, tenantID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.NotFound(c, "draft not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) SelectVenue(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.SelectVenue")
	defer span.End()

	var req dto.SelectVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, msg)
		return
	}

	tenantID := c.GetString(middleware.ContextTenantID)
	result, err := h.drafts.SelectVenue(ctx, tenantID, c.Param("id"), req.VenueID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.NotFound(c, "draft not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}

	resp := dto.ToDraftResponse(result.Draft)
	resp.Warning = result.Warning
	span.SetAttributes(attribute.String("venue.id", req.VenueID))
	response.Success(c, resp)
}

func (h *DraftHandler) AddTier(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.AddTier")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	draft, err := h.drafts.AddTier(ctx, tenantID, c.Param("id"))
	if err != nil {
		h.writeTierError(c, span, err)
		return
	}
	response.Success(c, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) UpdateTier(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.UpdateTier")
	defer span.End()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "tier index must be a number")
		return
	}

	var req dto.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, msg)
		return
	}

	tenantID := c.GetString(middleware.ContextTenantID)
	draft, err := h.drafts.UpdateTier(ctx, tenantID, c.Param("id"), index, &req)
	if err != nil {
		h.writeTierError(c, span, err)
		return
	}
	response.Success(c, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) RemoveTier(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.RemoveTier")
	defer span.End()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "tier index must be a number")
		return
	}

	tenantID := c.GetString(middleware.ContextTenantID)
	draft, err := h.drafts.RemoveTier(ctx, tenantID, c.Param("id"), index)
	if err != nil {
		h.writeTierError(c, span, err)
		return
	}
	response.Success(c, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) Reset(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.Reset")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	draft, err := h.drafts.ResetDraft(ctx, tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.NotFound(c, "draft not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) Submit(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.Submit")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	actorID := c.GetString(middleware.ContextUserID)
	event, err := h.drafts.SubmitDraft(ctx, tenantID, actorID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDraftNotFound):
			response.NotFound(c, "draft not found")
		case errors.Is(err, service.ErrEventNotFound):
			response.Conflict(c, "underlying event no longer exists")
		default:
			// Submission failures surface verbatim; the draft is intact
			// and the user can retry.
			span.SetStatus(codes.Error, err.Error())
			response.Error(c, http.StatusBadGateway, "SUBMIT_FAILED", err.Error(), "")
		}
		return
	}

	span.SetAttributes(attribute.String("event.id", event.ID))
	response.Created(c, &dto.SubmitDraftResponse{Event: dto.ToEventResponse(event)})
}

func (h *DraftHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.draft.Delete")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	if err := h.drafts.DeleteDraft(ctx, tenantID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.NotFound(c, "draft not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *DraftHandler) writeTierError(c *gin.Context, span trace.Span, err error) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		response.NotFound(c, "draft not found")
	case errors.Is(err, domain.ErrTierIndexInvalid):
		response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrTierLimit),
		errors.Is(err, domain.ErrTierMinimum),
		errors.Is(err, domain.ErrTierHasOrders):
		response.Conflict(c, err.Error())
	default:
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
	}
}

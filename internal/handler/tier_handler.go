package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/service"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/middleware"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/response"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/telemetry"
)

type TierHandler struct {
	tiers service.TierService
}

func NewTierHandler(tiers service.TierService) *TierHandler {
	return &TierHandler{tiers: tiers}
}

func (h *TierHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.tier.Create")
	defer span.End()

	var req dto.CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, msg)
		return
	}

	tenantID := c.GetString(middleware.ContextTenantID)
	actorID := c.GetString(middleware.ContextUserID)
	tier, err := h.tiers.CreateTier(ctx, tenantID, actorID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, "event not found")
		case errors.Is(err, domain.ErrTierLimit):
			response.Conflict(c, err.Error())
		default:
			span.SetStatus(codes.Error, err.Error())
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, dto.ToTierResponse(tier))
}

func (h *TierHandler) ListByEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.tier.ListByEvent")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	tiers, err := h.tiers.GetTiers(ctx, tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(c, "event not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToTierResponses(tiers))
}

func (h *TierHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.tier.Update")
	defer span.End()

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
	actorID := c.GetString(middleware.ContextUserID)
	tier, err := h.tiers.UpdateTier(ctx, tenantID, actorID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrTierNotFound) {
			response.NotFound(c, "ticket tier not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToTierResponse(tier))
}

func (h *TierHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.tier.Delete")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	actorID := c.GetString(middleware.ContextUserID)
	if err := h.tiers.DeleteTier(ctx, tenantID, actorID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrTierNotFound):
			response.NotFound(c, "ticket tier not found")
		case errors.Is(err, domain.ErrTierHasOrders), errors.Is(err, domain.ErrTierMinimum):
			response.Conflict(c, err.Error())
		default:
			span.SetStatus(codes.Error, err.Error())
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/domain"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/service"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/middleware"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/response"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/telemetry"
)

type EventHandler struct {
	events service.EventService
	tiers  service.TierService
}

func NewEventHandler(events service.EventService, tiers service.TierService) *EventHandler {
	return &EventHandler{events: events, tiers: tiers}
}

func (h *EventHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.Create")
	defer span.End()

	var req dto.CreateEventRequest
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
	event, err := h.events.CreateEvent(ctx, tenantID, actorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.BadRequest(c, "venue not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}

	span.SetAttributes(attribute.String("event.id", event.ID))
	response.Created(c, dto.ToEventResponse(event))
}

func (h *EventHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.Get")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	event, err := h.events.GetEvent(ctx, tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(c, "event not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}

	tiers, err := h.tiers.GetTiers(ctx, tenantID, event.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToEventResponseWithTiers(event, tiers))
}

func (h *EventHandler) GetBySlug(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.GetBySlug")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	event, err := h.events.GetEventBySlug(ctx, tenantID, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(c, "event not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToEventResponse(event))
}

func (h *EventHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.List")
	defer span.End()

	var filter dto.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.SetDefaults()

	tenantID := c.GetString(middleware.ContextTenantID)
	events, total, err := h.events.ListEvents(ctx, tenantID, &filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}

	out := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToEventResponse(e))
	}
	response.Paginated(c, out, int(total), filter.Limit, filter.Offset)
}

func (h *EventHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.Update")
	defer span.End()

	var req dto.UpdateEventRequest
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
	event, err := h.events.UpdateEvent(ctx, tenantID, actorID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, "event not found")
		case errors.Is(err, service.ErrVenueNotFound):
			response.BadRequest(c, "venue not found")
		default:
			span.SetStatus(codes.Error, err.Error())
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, dto.ToEventResponse(event))
}

func (h *EventHandler) Publish(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.Publish")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	actorID := c.GetString(middleware.ContextUserID)
	event, err := h.events.PublishEvent(ctx, tenantID, actorID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, "event not found")
		case errors.Is(err, domain.ErrInvalidEventStatus):
			response.Conflict(c, err.Error())
		default:
			span.SetStatus(codes.Error, err.Error())
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, dto.ToEventResponse(event))
}

func (h *EventHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.Delete")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	actorID := c.GetString(middleware.ContextUserID)
	if err := h.events.DeleteEvent(ctx, tenantID, actorID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(c, "event not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

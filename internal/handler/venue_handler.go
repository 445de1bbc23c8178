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

type VenueHandler struct {
	venues service.VenueService
}

func NewVenueHandler(venues service.VenueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

func (h *VenueHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.Create")
	defer span.End()

	var req dto.CreateVenueRequest
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
	venue, err := h.venues.CreateVenue(ctx, tenantID, actorID, &req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, domain.ErrInvalidTenantID) || errors.Is(err, domain.ErrInvalidCapacity) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	span.SetAttributes(attribute.String("venue.id", venue.ID))
	response.Created(c, dto.ToVenueResponse(venue))
}

func (h *VenueHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.Get")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	venue, err := h.venues.GetVenue(ctx, tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.NotFound(c, "venue not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToVenueResponse(venue))
}

func (h *VenueHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.List")
	defer span.End()

	var filter dto.VenueListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.SetDefaults()

	tenantID := c.GetString(middleware.ContextTenantID)
	venues, total, err := h.venues.ListVenues(ctx, tenantID, &filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}

	out := make([]*dto.VenueResponse, 0, len(venues))
	for _, v := range venues {
		out = append(out, dto.ToVenueResponse(v))
	}
	response.Paginated(c, out, int(total), filter.Limit, filter.Offset)
}

func (h *VenueHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.Update")
	defer span.End()

	var req dto.UpdateVenueRequest
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
	venue, err := h.venues.UpdateVenue(ctx, tenantID, actorID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.NotFound(c, "venue not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ToVenueResponse(venue))
}

func (h *VenueHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.Delete")
	defer span.End()

	tenantID := c.GetString(middleware.ContextTenantID)
	actorID := c.GetString(middleware.ContextUserID)
	if err := h.venues.DeleteVenue(ctx, tenantID, actorID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.NotFound(c, "venue not found")
			return
		}
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

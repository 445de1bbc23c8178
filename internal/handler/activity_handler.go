package handler

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"

	"github.com/godspeedtalent/force-majeure-ticketing/internal/dto"
	"github.com/godspeedtalent/force-majeure-ticketing/internal/service"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/middleware"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/response"
	"github.com/godspeedtalent/force-majeure-ticketing/pkg/telemetry"
)

type ActivityHandler struct {
	activity service.ActivityService
}

func NewActivityHandler(activity service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List returns the tenant activity log, newest first
func (h *ActivityHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.activity.List")
	defer span.End()

	var filter dto.ActivityListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.SetDefaults()

	tenantID := c.GetString(middleware.ContextTenantID)
	records, total, err := h.activity.ListActivity(ctx, tenantID, &filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		response.InternalError(c, err)
		return
	}

	out := make([]*dto.ActivityResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ToActivityResponse(r))
	}
	response.Paginated(c, out, int(total), filter.Limit, filter.Offset)
}

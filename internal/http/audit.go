package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcourier/internal/audit"
	"github.com/mrlokans/bookcourier/internal/desk"
)

type AuditController struct {
	desk  *desk.Desk
	audit *audit.Service
}

func NewAuditController(d *desk.Desk, auditSvc *audit.Service) *AuditController {
	return &AuditController{desk: d, audit: auditSvc}
}

// Events lists recent audit events of the logged-in courier.
func (ac *AuditController) Events(c *gin.Context) {
	courierID, ok := ac.desk.CourierID()
	if !ok {
		respondDeskError(c, ac.desk, desk.ErrNoSession)
		return
	}

	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)
	if limit == 0 || limit > 500 {
		limit = 50
	}

	events, total, err := ac.audit.GetEvents(c.Request.Context(), courierID, limit, offset)
	if err != nil {
		respondDeskError(c, ac.desk, err)
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}

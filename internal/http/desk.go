package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/desk"
)

// DeskController turns desk API requests into desk events.
type DeskController struct {
	desk    *desk.Desk
	limiter *auth.RateLimiter
}

func NewDeskController(d *desk.Desk, limiter *auth.RateLimiter) *DeskController {
	return &DeskController{desk: d, limiter: limiter}
}

type loginRequest struct {
	CourierID    string `json:"courier_id"`
	PasswordHash string `json:"password_hash"`
	Password     string `json:"password"`
	Cancel       bool   `json:"cancel"`
}

type tabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

type rowRequest struct {
	Tab      string `json:"tab" binding:"required"`
	Row      *int   `json:"row"`
	Previous *int   `json:"previous"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}

func (dc *DeskController) respondState(c *gin.Context) {
	c.JSON(http.StatusOK, dc.desk.Snapshot())
}

// State returns the current desk snapshot. The CSRF middleware has already
// put a token in the response header.
func (dc *DeskController) State(c *gin.Context) {
	dc.respondState(c)
}

// Login answers the credential prompt. A plain password is hashed here the
// same way courier-add stored it.
func (dc *DeskController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid login request: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()

	if req.Cancel {
		err := dc.desk.Login(ctx, desk.CancelledCredentials{}, ip)
		if !errors.Is(err, desk.ErrLoginCancelled) {
			respondDeskError(c, dc.desk, err)
			return
		}
		dc.respondState(c)
		return
	}

	if dc.limiter != nil {
		if allowed, retryAfter := dc.limiter.Allow(ip, req.CourierID); !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
			c.JSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "too many login attempts",
				Code:  "rate_limited",
			})
			return
		}
	}

	hash := req.PasswordHash
	if hash == "" && req.Password != "" {
		hash = auth.HashPassword(req.CourierID, req.Password)
	}

	err := dc.desk.Login(ctx, desk.StaticCredentials{CourierID: req.CourierID, PasswordHash: hash}, ip)
	if err != nil {
		if dc.limiter != nil && errors.Is(err, desk.ErrNotFound) {
			dc.limiter.RecordFailure(ip, req.CourierID)
		}
		respondDeskError(c, dc.desk, err)
		return
	}
	if dc.limiter != nil {
		dc.limiter.RecordSuccess(ip, req.CourierID)
	}
	dc.respondState(c)
}

func (dc *DeskController) Logout(c *gin.Context) {
	dc.desk.Logout(c.Request.Context(), c.ClientIP())
	dc.respondState(c)
}

func (dc *DeskController) dispatch(c *gin.Context, ev desk.Event) {
	if err := dc.desk.Dispatch(c.Request.Context(), ev); err != nil {
		respondDeskError(c, dc.desk, err)
		return
	}
	dc.respondState(c)
}

func (dc *DeskController) ChangeTab(c *gin.Context) {
	var req tabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "tab is required")
		return
	}
	tab, err := desk.ParseTab(req.Tab)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	dc.dispatch(c, desk.TabChanged{Tab: tab})
}

// ChangeRow reports a new current row. Use -1 for "no row".
func (dc *DeskController) ChangeRow(c *gin.Context) {
	var req rowRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Row == nil || req.Previous == nil {
		respondBadRequest(c, "tab, row and previous are required")
		return
	}
	tab, err := desk.ParseTab(req.Tab)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	dc.dispatch(c, desk.RowSelectionChanged{Tab: tab, Current: *req.Row, Previous: *req.Previous})
}

// Action triggers select, deselect or mark on the current row.
func (dc *DeskController) Action(c *gin.Context) {
	action := desk.Action(c.Param("action"))
	switch action {
	case desk.ActionSelect, desk.ActionDeselect, desk.ActionMark:
		dc.dispatch(c, desk.ActionTriggered{Action: action})
	default:
		respondBadRequest(c, "unknown action "+string(action))
	}
}

// Comment stores the edited comment of the current selected row.
func (dc *DeskController) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid comment request: "+err.Error())
		return
	}
	dc.dispatch(c, desk.ActionTriggered{Action: desk.ActionComment, Prompt: desk.StaticComment(req.Comment)})
}

func (dc *DeskController) Refresh(c *gin.Context) {
	if err := dc.desk.Refresh(c.Request.Context()); err != nil {
		respondDeskError(c, dc.desk, err)
		return
	}
	dc.respondState(c)
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"launchpad/internal/countdown"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errSetTarget = "failed to save launch target"
)

// CountdownResponse is the payload of GET /api/v1/countdown.
type CountdownResponse struct {
	Snapshot countdown.Snapshot `json:"snapshot"`
	Target   string             `json:"target" example:"2027-01-01T00:00:00+07:00"`
}

// SetTargetRequest is the body of PUT /api/v1/admin/countdown/target.
type SetTargetRequest struct {
	// RFC3339, "YYYY-MM-DD HH:MM:SS", "YYYY-MM-DD" or epoch milliseconds.
	// null resets to next New Year.
	Target any `json:"target" swaggertype:"string" example:"2027-01-01T00:00:00Z"`
}

func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

func countdownResponse(snap countdown.Snapshot, target time.Time) CountdownResponse {
	return CountdownResponse{Snapshot: snap, Target: target.Format(time.RFC3339)}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Current countdown
// @Tags         countdown
// @Produce      json
// @Success      200  {object}  CountdownResponse
// @Router       /api/v1/countdown [get]
func (h *Handler) getCountdown(c *gin.Context) {
	snap := h.services.Countdown.Snapshot()
	c.JSON(http.StatusOK, countdownResponse(snap, h.services.Countdown.Target()))
}

// @Summary      Change the launch target
// @Description  Restarts the countdown toward the new instant. Zone-less values use the configured timezone.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      SetTargetRequest  true  "new target"
// @Success      200   {object}  CountdownResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/admin/countdown/target [put]
// @Security     BearerAuth
func (h *Handler) setTarget(c *gin.Context) {
	var req SetTargetRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	snap, err := h.services.Countdown.SetTarget(c.Request.Context(), req.Target)
	if err != nil {
		if errors.Is(err, countdown.ErrInvalidTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSetTarget, "set_target_failed", err)
		return
	}

	h.log.Infow("admin_target_set", "admin", c.GetInt(adminIDKey), "target", h.services.Countdown.Target())
	c.JSON(http.StatusOK, countdownResponse(snap, h.services.Countdown.Target()))
}

package handlers

import (
	"errors"
	"net/http"

	"launchpad/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscribeRequest is the body of POST /api/v1/subscribe.
type SubscribeRequest struct {
	Email string `json:"email" example:"founder@example.com"`
}

// @Summary      Subscribe to the launch notification
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Param        body  body      SubscribeRequest  true  "email"
// @Success      200   {object}  service.SubscriptionResult
// @Failure      400   {object}  service.SubscriptionResult
// @Failure      409   {object}  service.SubscriptionResult
// @Failure      500   {object}  service.SubscriptionResult
// @Router       /api/v1/subscribe [post]
func (h *Handler) subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.SubscriptionResult{Message: "Please enter a valid email address"})
		return
	}

	res, err := h.services.Subscription.Submit(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, res)
	case errors.Is(err, service.ErrAlreadySubscribed):
		c.JSON(http.StatusConflict, res)
	default:
		h.log.Errorw("subscribe_failed", "err", err)
		c.JSON(http.StatusInternalServerError, res)
	}
}

// @Summary      Subscriber count
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/admin/subscribers/count [get]
// @Security     BearerAuth
func (h *Handler) subscriberCount(c *gin.Context) {
	n, err := h.services.Subscription.Count(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to count subscribers", "subscriber_count_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// @Summary      Check whether an email is subscribed
// @Tags         admin
// @Produce      json
// @Param        email  query     string  true  "email address"
// @Success      200    {object}  map[string]interface{}  "email, subscribed"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/admin/subscribers/check [get]
// @Security     BearerAuth
func (h *Handler) subscriberCheck(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}
	ok, err := h.services.Subscription.IsSubscribed(c.Request.Context(), email)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to check subscriber", "subscriber_check_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "subscribed": ok})
}

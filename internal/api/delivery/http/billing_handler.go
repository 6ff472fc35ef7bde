package http

import (
	"io"
	"net/http"

	"gary-picks-engine/internal/api/dto"
	"gary-picks-engine/internal/api/service"
	"gary-picks-engine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BillingHandler handles HTTP requests for subscriptions and payment webhooks.
type BillingHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService service.BillingService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{billingService: billingService, logger: logger}
}

// RegisterRoutes registers the billing routes to the Echo group.
func (h *BillingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/subscription/:user_id", h.GetSubscription)
	g.POST("/portal-session", h.CreatePortalSession)
	g.POST("/webhook", h.HandleWebhook)
}

// GetSubscription godoc
// @Summary Get a user's subscription
// @Description Get a user's billing plan and status
// @Tags billing
// @Produce  json
// @Param   user_id  path    string true    "User ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /billing/subscription/{user_id} [get]
func (h *BillingHandler) GetSubscription(c echo.Context) error {
	sub, err := h.billingService.GetSubscription(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, sub)
}

// CreatePortalSession godoc
// @Summary Create a billing portal session
// @Description Create a payment provider portal session for subscription management
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   request  body    dto.CreatePortalSessionRequest   true    "Portal session request"
// @Success 200 {object} dto.PortalSessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /billing/portal-session [post]
func (h *BillingHandler) CreatePortalSession(c echo.Context) error {
	var req dto.CreatePortalSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.CustomerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id is required"})
	}

	resp, err := h.billingService.CreatePortalSession(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create portal session"})
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleWebhook godoc
// @Summary Receive a payment provider webhook
// @Description Verify and apply a payment provider webhook event
// @Tags billing
// @Accept  json
// @Produce  json
// @Success 200 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /billing/webhook [post]
func (h *BillingHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to read payload"})
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.billingService.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		h.logger.Error("Webhook processing failed", logger.ErrorField(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Webhook processing failed"})
	}

	return c.NoContent(http.StatusOK)
}

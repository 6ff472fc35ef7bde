package http

import (
	"net/http"
	"strconv"

	"gary-picks-engine/internal/api/service"
	"gary-picks-engine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests for user notifications.
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

// RegisterRoutes registers the notification routes to the Echo group.
func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetUserNotifications)
	g.PUT("/:id/read", h.MarkRead)
}

// GetUserNotifications godoc
// @Summary Get a user's notifications
// @Description Get a user's notifications, newest first
// @Tags notifications
// @Produce  json
// @Param   user_id  query    string true    "User ID"
// @Param   unread   query    bool   false   "Only unread notifications"
// @Param   limit    query    int    false   "Max entries to return"
// @Success 200 {array} entity.Notification
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) GetUserNotifications(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}
	unreadOnly, _ := strconv.ParseBool(c.QueryParam("unread"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	notifications, err := h.notificationService.GetUserNotifications(c.Request().Context(), userID, unreadOnly, limit)
	if err != nil {
		h.logger.Error("Failed to get notifications", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get notifications"})
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Description Mark one of the user's notifications as read
// @Tags notifications
// @Produce  json
// @Param   id       path     int    true    "Notification ID"
// @Param   user_id  query    string true    "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid notification id"})
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), userID, uint(id)); err != nil {
		h.logger.Error("Failed to mark notification read", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to mark notification read"})
	}
	return c.NoContent(http.StatusNoContent)
}

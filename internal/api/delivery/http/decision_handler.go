package http

import (
	"errors"
	"net/http"
	"strconv"

	"gary-picks-engine/internal/api/dto"
	"gary-picks-engine/internal/api/service"
	"gary-picks-engine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DecisionHandler handles HTTP requests for bet/fade decisions.
type DecisionHandler struct {
	decisionService service.DecisionService
	logger          *logger.Logger
}

// NewDecisionHandler creates a new DecisionHandler.
func NewDecisionHandler(decisionService service.DecisionService, logger *logger.Logger) *DecisionHandler {
	return &DecisionHandler{decisionService: decisionService, logger: logger}
}

// RegisterRoutes registers the decision routes to the Echo group.
func (h *DecisionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateDecision)
	g.GET("", h.GetUserDecisions)
}

// CreateDecision godoc
// @Summary Record a bet or fade decision
// @Description Record an immutable bet/fade call on a pick before its game starts
// @Tags decisions
// @Accept  json
// @Produce  json
// @Param   decision  body    dto.CreateDecisionRequest   true    "Decision to record"
// @Success 201 {object} dto.DecisionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /decisions [post]
func (h *DecisionHandler) CreateDecision(c echo.Context) error {
	var req dto.CreateDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.UserID == "" || req.PickID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and pick_id are required"})
	}

	resp, err := h.decisionService.CreateDecision(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision), errors.Is(err, service.ErrPickLocked):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrDecisionExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetUserDecisions godoc
// @Summary Get a user's decisions
// @Description Get a user's decision history, newest first
// @Tags decisions
// @Produce  json
// @Param   user_id  query    string true    "User ID"
// @Param   limit    query    int    false   "Max records to return"
// @Success 200 {array} dto.DecisionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /decisions [get]
func (h *DecisionHandler) GetUserDecisions(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	decisions, err := h.decisionService.GetUserDecisions(c.Request().Context(), userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, decisions)
}

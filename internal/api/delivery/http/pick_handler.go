package http

import (
	"errors"
	"net/http"
	"strconv"

	"gary-picks-engine/internal/api/service"
	"gary-picks-engine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PickHandler handles HTTP requests for picks and prop picks.
type PickHandler struct {
	pickService service.PickService
	logger      *logger.Logger
}

// NewPickHandler creates a new PickHandler.
func NewPickHandler(pickService service.PickService, logger *logger.Logger) *PickHandler {
	return &PickHandler{pickService: pickService, logger: logger}
}

// RegisterRoutes registers the pick routes to the Echo group.
func (h *PickHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetTodayPicks)
	g.GET("/:id", h.GetPickByID)
	g.GET("/props", h.GetTodayPropPicks)
	g.GET("/props/:id", h.GetPropPickByID)
}

// GetTodayPicks godoc
// @Summary Get picks
// @Description Get picks for today's slate, or filter across days by settlement status
// @Tags picks
// @Produce  json
// @Param   sport  query    string false    "Filter by sport"
// @Param   status  query    string false    "Filter by settlement status instead of today's slate"
// @Param   limit  query    int false    "Max rows when filtering by status"
// @Success 200 {array} dto.PickResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /picks [get]
func (h *PickHandler) GetTodayPicks(c echo.Context) error {
	if status := c.QueryParam("status"); status != "" {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		picks, err := h.pickService.GetPicksByStatus(c.Request().Context(), status, limit)
		if err != nil {
			if errors.Is(err, service.ErrInvalidPickStatus) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid pick status"})
			}
			h.logger.Error("Failed to get picks by status", logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get picks"})
		}
		return c.JSON(http.StatusOK, picks)
	}

	picks, err := h.pickService.GetTodayPicks(c.Request().Context(), c.QueryParam("sport"))
	if err != nil {
		h.logger.Error("Failed to get today's picks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get picks"})
	}
	return c.JSON(http.StatusOK, picks)
}

// GetPickByID godoc
// @Summary Get a pick by ID
// @Description Get a single pick by its ID
// @Tags picks
// @Produce  json
// @Param   id  path    int true    "Pick ID"
// @Success 200 {object} dto.PickResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /picks/{id} [get]
func (h *PickHandler) GetPickByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid pick ID"})
	}

	pick, err := h.pickService.GetPickByID(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, pick)
}

// GetTodayPropPicks godoc
// @Summary Get today's prop picks
// @Description Get all player prop picks for today's slate, highest confidence first
// @Tags picks
// @Produce  json
// @Param   sport  query    string false    "Filter by sport"
// @Success 200 {array} dto.PropPickResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /picks/props [get]
func (h *PickHandler) GetTodayPropPicks(c echo.Context) error {
	props, err := h.pickService.GetTodayPropPicks(c.Request().Context(), c.QueryParam("sport"))
	if err != nil {
		h.logger.Error("Failed to get today's prop picks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get prop picks"})
	}
	return c.JSON(http.StatusOK, props)
}

// GetPropPickByID godoc
// @Summary Get a prop pick by ID
// @Description Get a single player prop pick by its ID
// @Tags picks
// @Produce  json
// @Param   id  path    int true    "Prop pick ID"
// @Success 200 {object} dto.PropPickResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /picks/props/{id} [get]
func (h *PickHandler) GetPropPickByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid prop pick ID"})
	}

	prop, err := h.pickService.GetPropPickByID(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, prop)
}

package http

import (
	"net/http"
	"strconv"

	"gary-picks-engine/internal/api/service"
	"gary-picks-engine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatsHandler handles HTTP requests for user records and the leaderboard.
type StatsHandler struct {
	statsService service.StatsService
	logger       *logger.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, logger: logger}
}

// RegisterRoutes registers the stats routes to the Echo group.
func (h *StatsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:user_id", h.GetUserStats)
	g.GET("/leaderboard", h.GetLeaderboard)
}

// GetUserStats godoc
// @Summary Get a user's record
// @Description Get a user's win/loss record, streak, and bankroll
// @Tags stats
// @Produce  json
// @Param   user_id  path    string true    "User ID"
// @Success 200 {object} dto.UserStatsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stats/{user_id} [get]
func (h *StatsHandler) GetUserStats(c echo.Context) error {
	stats, err := h.statsService.GetUserStats(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

// GetLeaderboard godoc
// @Summary Get the leaderboard
// @Description Get the top users ranked by bankroll
// @Tags stats
// @Produce  json
// @Param   limit  query    int false    "Max entries to return"
// @Success 200 {array} dto.UserStatsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stats/leaderboard [get]
func (h *StatsHandler) GetLeaderboard(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	leaderboard, err := h.statsService.GetLeaderboard(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get leaderboard", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get leaderboard"})
	}
	return c.JSON(http.StatusOK, leaderboard)
}

package http

import (
	"net/http"
	"strconv"

	"gary-picks-engine/internal/api/service"
	"gary-picks-engine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// JobRunHandler handles HTTP requests for job run history.
type JobRunHandler struct {
	runService service.JobRunService
	logger     *logger.Logger
}

// NewJobRunHandler creates a new JobRunHandler.
func NewJobRunHandler(runService service.JobRunService, logger *logger.Logger) *JobRunHandler {
	return &JobRunHandler{runService: runService, logger: logger}
}

// RegisterRoutes registers the job run routes to the Echo group.
func (h *JobRunHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllJobRuns)
	g.GET("/:id", h.GetJobRunByID)
}

// RegisterJobRoutes registers the job-specific run routes.
func (h *JobRunHandler) RegisterJobRoutes(g *echo.Group) {
	g.GET("/:id/runs", h.GetJobRunsByJobID)
}

// GetAllJobRuns godoc
// @Summary Get all job runs
// @Description Get all job run records
// @Tags runs
// @Produce  json
// @Success 200 {array} dto.JobRunResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs [get]
func (h *JobRunHandler) GetAllJobRuns(c echo.Context) error {
	runs, err := h.runService.GetAllJobRuns(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all job runs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get job runs"})
	}
	return c.JSON(http.StatusOK, runs)
}

// GetJobRunByID godoc
// @Summary Get a job run by ID
// @Description Get a single job run record by its ID
// @Tags runs
// @Produce  json
// @Param   id  path    int true    "Job Run ID"
// @Success 200 {object} dto.JobRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs/{id} [get]
func (h *JobRunHandler) GetJobRunByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid run ID"})
	}

	run, err := h.runService.GetJobRunByID(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, run)
}

// GetJobRunsByJobID godoc
// @Summary Get job runs for a job
// @Description Get all job run records for a specific job ID
// @Tags jobs
// @Produce  json
// @Param   id  path    int true    "Job ID"
// @Success 200 {array} dto.JobRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/{id}/runs [get]
func (h *JobRunHandler) GetJobRunsByJobID(c echo.Context) error {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid job ID"})
	}

	runs, err := h.runService.GetJobRunsByJobID(c.Request().Context(), uint(jobID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, runs)
}

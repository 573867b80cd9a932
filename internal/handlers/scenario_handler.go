package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finplan/internal/errors"
	"finplan/internal/services"
)

// ScenarioHandler handles scenario-related requests.
type ScenarioHandler struct {
	scenarioService services.ScenarioServicer
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioService services.ScenarioServicer) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// CreateScenarioRequest represents the request payload for creating a scenario
type CreateScenarioRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	CloneFromID *string `json:"clone_from_id"`
}

// CreateScenario handles the creation of a new scenario
// @Summary     Create a scenario
// @Description Create a new what-if scenario, optionally cloning the planned transactions of an existing one
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateScenarioRequest true "Scenario details"
// @Success     201 {object} models.Scenario "Scenario created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Clone source not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios [post]
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.CreateScenario(userID, req.Name, req.CloneFromID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"scenario": scenario})
}

// GetUserScenarios handles the retrieval of the user's scenarios
// @Summary     Get user scenarios
// @Description Get all scenarios of the authenticated user, oldest first
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Scenario "Scenarios"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios [get]
func (h *ScenarioHandler) GetUserScenarios(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenarios, err := h.scenarioService.GetUserScenarios(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

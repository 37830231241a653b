package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bloggang/writing-challenge-api/internal/dto"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/middleware"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/services"
)

// GenerationHandler coordinates generation and cycle endpoints.
type GenerationHandler struct {
	generationService *services.GenerationService
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generationService *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
	}
}

// CreateGeneration creates a generation inside the organization.
func (h *GenerationHandler) CreateGeneration(c *gin.Context) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	type CreateGenerationRequest struct {
		Name      string     `json:"name" binding:"required"`
		StartedAt *time.Time `json:"started_at"`
		IsActive  bool       `json:"is_active"`
	}

	var req CreateGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	startedAt := time.Now()
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}

	generation, err := h.generationService.CreateGeneration(services.CreateGenerationInput{
		OrganizationID: org.ID,
		Name:           req.Name,
		StartedAt:      startedAt,
		IsActive:       req.IsActive,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGenerationDTO(*generation))
}

// ActivateGeneration marks a generation active.
func (h *GenerationHandler) ActivateGeneration(c *gin.Context) {
	h.updateActivation(c, h.generationService.ActivateGeneration)
}

// DeactivateGeneration marks a generation inactive.
func (h *GenerationHandler) DeactivateGeneration(c *gin.Context) {
	h.updateActivation(c, h.generationService.DeactivateGeneration)
}

func (h *GenerationHandler) updateActivation(c *gin.Context, update func(uint64) (*models.Generation, error)) {
	generationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid generation ID")
		return
	}

	generation, err := update(generationID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGenerationDTO(*generation))
}

// JoinGeneration records the current member joining a generation.
func (h *GenerationHandler) JoinGeneration(c *gin.Context) {
	memberID, exists := middleware.GetMemberID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	generationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid generation ID")
		return
	}

	if _, err := h.generationService.JoinGeneration(generationID, memberID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined generation",
	})
}

// CreateCycle creates a dated week inside a generation.
func (h *GenerationHandler) CreateCycle(c *gin.Context) {
	generationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid generation ID")
		return
	}

	type CreateCycleRequest struct {
		Week      int       `json:"week" binding:"required"`
		StartDate time.Time `json:"start_date" binding:"required"`
		EndDate   time.Time `json:"end_date" binding:"required"`
		IssueURL  string    `json:"issue_url"`
	}

	var req CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	cycle, err := h.generationService.CreateCycle(services.CreateCycleInput{
		GenerationID: generationID,
		Week:         req.Week,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IssueURL:     req.IssueURL,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCycleDTO(*cycle))
}

package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bloggang/writing-challenge-api/internal/dto"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/services"
)

// StatusHandler exposes the read-only query surface used by the bot and
// the dashboard.
type StatusHandler struct {
	statusService *services.StatusService
	notifier      services.Notifier
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statusService *services.StatusService, notifier services.Notifier) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		notifier:      notifier,
	}
}

// CurrentCycle returns the cycle currently in progress for an organization.
func (h *StatusHandler) CurrentCycle(c *gin.Context) {
	result, err := h.statusService.CurrentCycle(c.Param("slug"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if result == nil {
		apperrors.NotFoundResponse(c, "No cycle is currently in progress")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrentCycleDTO(*result))
}

// CycleStatus returns the submitted / not-submitted partition for a cycle.
func (h *StatusHandler) CycleStatus(c *gin.Context) {
	cycleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid cycle ID")
		return
	}

	orgSlug := c.Query("org")
	if orgSlug == "" {
		apperrors.BadRequest(c, "org query parameter is required")
		return
	}

	result, err := h.statusService.CycleStatus(cycleID, orgSlug)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if c.Query("notify") == "true" {
		if err := h.notifier.StatusSnapshot(c.Request.Context(), result.WebhookURL, *result); err != nil {
			log.Printf("failed to dispatch status snapshot for cycle %d: %v", result.CycleID, err)
		}
	}

	c.JSON(http.StatusOK, dto.ToCycleStatusDTO(*result))
}

// NotSubmittedMembers returns the approved members without a submission.
func (h *StatusHandler) NotSubmittedMembers(c *gin.Context) {
	cycleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid cycle ID")
		return
	}

	entries, err := h.statusService.NotSubmittedMembers(cycleID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	dtos := make([]dto.NotSubmittedEntryDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = dto.NotSubmittedEntryDTO{
			MemberID: entry.MemberID,
			Name:     entry.Name,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"not_submitted": dtos,
	})
}

// ReminderTargets returns cycles approaching their deadline. With notify=true
// a reminder is also dispatched to each organization's webhook; this endpoint
// is what the periodic caller hits.
func (h *StatusHandler) ReminderTargets(c *gin.Context) {
	hours, err := strconv.Atoi(c.DefaultQuery("hours", "24"))
	if err != nil {
		apperrors.BadRequest(c, "Invalid hours")
		return
	}

	targets, err := h.statusService.ReminderTargets(hours)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if c.Query("notify") == "true" {
		for _, target := range targets {
			if len(target.NotSubmitted) == 0 {
				continue
			}
			if err := h.notifier.Reminder(c.Request.Context(), target.WebhookURL, target); err != nil {
				log.Printf("failed to dispatch reminder for cycle %d: %v", target.CycleID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders": dto.ToReminderTargetDTOs(targets),
	})
}

package dto

import (
	"time"

	"github.com/bloggang/writing-challenge-api/internal/models"
)

// GenerationDTO represents a generation in API responses
type GenerationDTO struct {
	ID             uint64    `json:"id"`
	OrganizationID uint64    `json:"organization_id"`
	Name           string    `json:"name"`
	StartedAt      time.Time `json:"started_at"`
	IsActive       bool      `json:"is_active"`
}

// CycleDTO represents a cycle in API responses
type CycleDTO struct {
	ID           uint64    `json:"id"`
	GenerationID uint64    `json:"generation_id"`
	Week         int       `json:"week"`
	Label        string    `json:"label"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IssueURL     string    `json:"issue_url,omitempty"`
}

// SubmissionDTO represents a submission in API responses
type SubmissionDTO struct {
	ID          uint64    `json:"id"`
	CycleID     uint64    `json:"cycle_id"`
	MemberID    uint64    `json:"member_id"`
	URL         string    `json:"url"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ToGenerationDTO converts a Generation model to GenerationDTO
func ToGenerationDTO(generation models.Generation) GenerationDTO {
	return GenerationDTO{
		ID:             generation.ID,
		OrganizationID: generation.OrganizationID,
		Name:           generation.Name,
		StartedAt:      generation.StartedAt,
		IsActive:       generation.IsActive,
	}
}

// ToCycleDTO converts a Cycle model to CycleDTO
func ToCycleDTO(cycle models.Cycle) CycleDTO {
	return CycleDTO{
		ID:           cycle.ID,
		GenerationID: cycle.GenerationID,
		Week:         cycle.Week,
		Label:        cycle.Label(),
		StartDate:    cycle.StartDate,
		EndDate:      cycle.EndDate,
		IssueURL:     cycle.IssueURL,
	}
}

// ToSubmissionDTO converts a Submission model to SubmissionDTO
func ToSubmissionDTO(submission models.Submission) SubmissionDTO {
	return SubmissionDTO{
		ID:          submission.ID,
		CycleID:     submission.CycleID,
		MemberID:    submission.MemberID,
		URL:         submission.URL,
		SubmittedAt: submission.SubmittedAt,
	}
}

package dto

import (
	"time"

	"github.com/bloggang/writing-challenge-api/internal/services"
)

// CurrentCycleDTO represents the cycle currently in progress
type CurrentCycleDTO struct {
	CycleID        uint64    `json:"cycle_id"`
	GenerationName string    `json:"generation_name"`
	Week           int       `json:"week"`
	Label          string    `json:"label"`
	EndDate        time.Time `json:"end_date"`
	HoursLeft      int       `json:"hours_left"`
	IssueURL       string    `json:"issue_url,omitempty"`
}

// SubmittedEntryDTO is one member with a submission
type SubmittedEntryDTO struct {
	MemberID    uint64    `json:"member_id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NotSubmittedEntryDTO is one member without a submission
type NotSubmittedEntryDTO struct {
	MemberID uint64 `json:"member_id"`
	Name     string `json:"name"`
}

// StatusSummaryDTO carries the partition counts
type StatusSummaryDTO struct {
	Total        int `json:"total"`
	Submitted    int `json:"submitted"`
	NotSubmitted int `json:"not_submitted"`
}

// CycleStatusDTO represents the submitted / not-submitted partition
type CycleStatusDTO struct {
	CycleID      uint64                 `json:"cycle_id"`
	Label        string                 `json:"label"`
	Deadline     time.Time              `json:"deadline"`
	Submitted    []SubmittedEntryDTO    `json:"submitted"`
	NotSubmitted []NotSubmittedEntryDTO `json:"not_submitted"`
	Summary      StatusSummaryDTO       `json:"summary"`
}

// ReminderTargetDTO is one cycle approaching its deadline
type ReminderTargetDTO struct {
	CycleID          uint64                 `json:"cycle_id"`
	Label            string                 `json:"label"`
	GenerationName   string                 `json:"generation_name"`
	OrganizationSlug string                 `json:"organization_slug"`
	Deadline         time.Time              `json:"deadline"`
	NotSubmitted     []NotSubmittedEntryDTO `json:"not_submitted"`
}

// ToCurrentCycleDTO converts a current-cycle query result
func ToCurrentCycleDTO(result services.CurrentCycleResult) CurrentCycleDTO {
	return CurrentCycleDTO{
		CycleID:        result.CycleID,
		GenerationName: result.GenerationName,
		Week:           result.Week,
		Label:          result.Label,
		EndDate:        result.EndDate,
		HoursLeft:      result.HoursLeft,
		IssueURL:       result.IssueURL,
	}
}

// ToCycleStatusDTO converts a cycle-status query result
func ToCycleStatusDTO(result services.CycleStatusResult) CycleStatusDTO {
	submitted := make([]SubmittedEntryDTO, len(result.Submitted))
	for i, entry := range result.Submitted {
		submitted[i] = SubmittedEntryDTO{
			MemberID:    entry.MemberID,
			Name:        entry.Name,
			URL:         entry.URL,
			SubmittedAt: entry.SubmittedAt,
		}
	}

	return CycleStatusDTO{
		CycleID:      result.CycleID,
		Label:        result.Label,
		Deadline:     result.Deadline,
		Submitted:    submitted,
		NotSubmitted: toNotSubmittedDTOs(result.NotSubmitted),
		Summary: StatusSummaryDTO{
			Total:        result.Summary.Total,
			Submitted:    result.Summary.Submitted,
			NotSubmitted: result.Summary.NotSubmitted,
		},
	}
}

// ToReminderTargetDTOs converts reminder query results
func ToReminderTargetDTOs(targets []services.ReminderTarget) []ReminderTargetDTO {
	dtos := make([]ReminderTargetDTO, len(targets))
	for i, target := range targets {
		dtos[i] = ReminderTargetDTO{
			CycleID:          target.CycleID,
			Label:            target.Label,
			GenerationName:   target.GenerationName,
			OrganizationSlug: target.OrganizationSlug,
			Deadline:         target.Deadline,
			NotSubmitted:     toNotSubmittedDTOs(target.NotSubmitted),
		}
	}
	return dtos
}

func toNotSubmittedDTOs(entries []services.NotSubmittedEntry) []NotSubmittedEntryDTO {
	dtos := make([]NotSubmittedEntryDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = NotSubmittedEntryDTO{
			MemberID: entry.MemberID,
			Name:     entry.Name,
		}
	}
	return dtos
}

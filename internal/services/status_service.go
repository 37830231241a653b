package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/repository"
)

var (
	ErrCycleNotFound        = apperrors.NotFound("cycle not found")
	ErrCycleNotInOrg        = apperrors.NotFound("cycle does not belong to this organization")
	ErrInvalidReminderHours = apperrors.Validation("hours must be positive")
)

// StatusService answers the read-only queries: current cycle, who has and
// has not submitted, and reminder targets.
type StatusService struct {
	orgRepo        repository.OrganizationRepository
	generationRepo repository.GenerationRepository
	cycleRepo      repository.CycleRepository
	submissionRepo repository.SubmissionRepository
}

// NewStatusService creates a new StatusService.
func NewStatusService(
	orgRepo repository.OrganizationRepository,
	generationRepo repository.GenerationRepository,
	cycleRepo repository.CycleRepository,
	submissionRepo repository.SubmissionRepository,
) *StatusService {
	return &StatusService{
		orgRepo:        orgRepo,
		generationRepo: generationRepo,
		cycleRepo:      cycleRepo,
		submissionRepo: submissionRepo,
	}
}

// CurrentCycleResult describes the cycle currently in progress.
type CurrentCycleResult struct {
	CycleID        uint64
	GenerationName string
	Week           int
	Label          string
	EndDate        time.Time
	HoursLeft      int
	IssueURL       string
}

// SubmittedEntry is one member who has submitted.
type SubmittedEntry struct {
	MemberID    uint64
	Name        string
	URL         string
	SubmittedAt time.Time
}

// NotSubmittedEntry is one approved member without a submission.
type NotSubmittedEntry struct {
	MemberID uint64
	Name     string
}

// StatusSummary carries the partition counts. Total always equals
// Submitted + NotSubmitted.
type StatusSummary struct {
	Total        int
	Submitted    int
	NotSubmitted int
}

// CycleStatusResult partitions an organization's approved members by
// submission.
type CycleStatusResult struct {
	CycleID      uint64
	Label        string
	Deadline     time.Time
	Submitted    []SubmittedEntry
	NotSubmitted []NotSubmittedEntry
	Summary      StatusSummary
	WebhookURL   string
}

// ReminderTarget is one cycle approaching its deadline, with the approved
// members who have not submitted yet.
type ReminderTarget struct {
	CycleID          uint64
	Label            string
	GenerationName   string
	OrganizationSlug string
	Deadline         time.Time
	NotSubmitted     []NotSubmittedEntry
	WebhookURL       string
}

// CurrentCycle returns the cycle in progress for the organization, or nil
// when it has no active generation or no cycle covering now.
func (s *StatusService) CurrentCycle(orgSlug string) (*CurrentCycleResult, error) {
	org, err := s.orgRepo.FindBySlug(orgSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	generation, err := s.generationRepo.FindActiveByOrganization(org.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active generation: %w", err)
	}

	now := time.Now()
	cycle, err := s.cycleRepo.FindActiveByGeneration(generation.ID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active cycle: %w", err)
	}

	return &CurrentCycleResult{
		CycleID:        cycle.ID,
		GenerationName: generation.Name,
		Week:           cycle.Week,
		Label:          cycle.Label(),
		EndDate:        cycle.EndDate,
		HoursLeft:      cycle.HoursLeft(now),
		IssueURL:       cycle.IssueURL,
	}, nil
}

// CycleStatus partitions the organization's approved members into submitted
// and not-submitted for the given cycle.
func (s *StatusService) CycleStatus(cycleID uint64, orgSlug string) (*CycleStatusResult, error) {
	org, err := s.orgRepo.FindBySlug(orgSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	cycle, err := s.findCycleInOrganization(cycleID, org.ID)
	if err != nil {
		return nil, err
	}

	status, err := s.buildCycleStatus(cycle, org.ID)
	if err != nil {
		return nil, err
	}
	status.WebhookURL = org.WebhookURL
	return status, nil
}

// NotSubmittedMembers returns the approved members of the cycle's
// organization who have not submitted.
func (s *StatusService) NotSubmittedMembers(cycleID uint64) ([]NotSubmittedEntry, error) {
	cycle, err := s.cycleRepo.FindByID(cycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCycleNotFound
		}
		return nil, fmt.Errorf("failed to find cycle: %w", err)
	}

	generation, err := s.generationRepo.FindByID(cycle.GenerationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find generation: %w", err)
	}

	status, err := s.buildCycleStatus(cycle, generation.OrganizationID)
	if err != nil {
		return nil, err
	}
	return status.NotSubmitted, nil
}

// ReminderTargets finds cycles across active generations whose deadline
// falls within the next hoursBefore hours, each with its non-submitters.
func (s *StatusService) ReminderTargets(hoursBefore int) ([]ReminderTarget, error) {
	if hoursBefore <= 0 {
		return nil, ErrInvalidReminderHours
	}

	generations, err := s.generationRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active generations: %w", err)
	}

	now := time.Now()
	window := time.Duration(hoursBefore) * time.Hour

	targets := []ReminderTarget{}
	for _, generation := range generations {
		cycles, err := s.cycleRepo.ListEndingWithin(generation.ID, now, now.Add(window))
		if err != nil {
			return nil, fmt.Errorf("failed to list ending cycles: %w", err)
		}

		for i := range cycles {
			status, err := s.buildCycleStatus(&cycles[i], generation.OrganizationID)
			if err != nil {
				return nil, err
			}

			targets = append(targets, ReminderTarget{
				CycleID:          cycles[i].ID,
				Label:            cycles[i].Label(),
				GenerationName:   generation.Name,
				OrganizationSlug: generation.Organization.Slug,
				Deadline:         cycles[i].EndDate,
				NotSubmitted:     status.NotSubmitted,
				WebhookURL:       generation.Organization.WebhookURL,
			})
		}
	}

	return targets, nil
}

// findCycleInOrganization loads a cycle and verifies its generation belongs
// to the organization. A cycle from another organization reads as not found
// rather than forbidden.
func (s *StatusService) findCycleInOrganization(cycleID, orgID uint64) (*models.Cycle, error) {
	cycle, err := s.cycleRepo.FindByID(cycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCycleNotFound
		}
		return nil, fmt.Errorf("failed to find cycle: %w", err)
	}

	generation, err := s.generationRepo.FindByID(cycle.GenerationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find generation: %w", err)
	}

	if generation.OrganizationID != orgID {
		return nil, ErrCycleNotInOrg
	}

	return cycle, nil
}

// buildCycleStatus computes the submitted / not-submitted partition over the
// organization's approved members, by set membership on member ID.
func (s *StatusService) buildCycleStatus(cycle *models.Cycle, orgID uint64) (*CycleStatusResult, error) {
	submissions, err := s.submissionRepo.ListByCycle(cycle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	approved, err := s.orgRepo.ListMembersByStatus(orgID, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved members: %w", err)
	}

	byMember := make(map[uint64]*models.Submission, len(submissions))
	for i := range submissions {
		byMember[submissions[i].MemberID] = &submissions[i]
	}

	result := &CycleStatusResult{
		CycleID:      cycle.ID,
		Label:        cycle.Label(),
		Deadline:     cycle.EndDate,
		Submitted:    []SubmittedEntry{},
		NotSubmitted: []NotSubmittedEntry{},
	}

	for _, membership := range approved {
		if submission, ok := byMember[membership.MemberID]; ok {
			result.Submitted = append(result.Submitted, SubmittedEntry{
				MemberID:    membership.MemberID,
				Name:        membership.Member.Name,
				URL:         submission.URL,
				SubmittedAt: submission.SubmittedAt,
			})
		} else {
			result.NotSubmitted = append(result.NotSubmitted, NotSubmittedEntry{
				MemberID: membership.MemberID,
				Name:     membership.Member.Name,
			})
		}
	}

	result.Summary = StatusSummary{
		Total:        len(approved),
		Submitted:    len(result.Submitted),
		NotSubmitted: len(result.NotSubmitted),
	}

	return result, nil
}

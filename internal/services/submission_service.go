package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/repository"
)

var (
	ErrCycleNotFoundForIssue = apperrors.NotFound("no cycle matches this issue")
	ErrUnknownGithubUsername = apperrors.NotFound("no member matches this GitHub username")
	ErrSubmissionURLMissing  = apperrors.Validation("submission URL is required")
)

// SubmissionService records submissions delivered by the webhook
// collaborator.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	cycleRepo      repository.CycleRepository
	memberRepo     repository.MemberRepository
	generationRepo repository.GenerationRepository
	orgRepo        repository.OrganizationRepository
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	cycleRepo repository.CycleRepository,
	memberRepo repository.MemberRepository,
	generationRepo repository.GenerationRepository,
	orgRepo repository.OrganizationRepository,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		cycleRepo:      cycleRepo,
		memberRepo:     memberRepo,
		generationRepo: generationRepo,
		orgRepo:        orgRepo,
	}
}

// RecordSubmissionInput is the structured record the webhook collaborator
// hands over. The core never sees raw webhook bodies.
type RecordSubmissionInput struct {
	GithubUsername string
	URL            string
	CommentID      string
	IssueRef       string
}

// RecordSubmissionResult carries the recorded (or pre-existing) submission.
// AlreadyRecorded distinguishes idempotent re-delivery from a fresh record;
// Event is set only for fresh records, WebhookURL is the organization's
// notification target when it has one.
type RecordSubmissionResult struct {
	Submission      *models.Submission
	AlreadyRecorded bool
	Event           *models.SubmissionRecorded
	WebhookURL      string
}

// RecordSubmission records one member's link for one cycle. Re-delivery of
// the same comment event, or a second link from the same member for the same
// cycle, returns the existing submission instead of failing.
func (s *SubmissionService) RecordSubmission(input RecordSubmissionInput) (*RecordSubmissionResult, error) {
	cycle, err := s.cycleRepo.FindByIssueURL(input.IssueRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCycleNotFoundForIssue
		}
		return nil, fmt.Errorf("failed to resolve cycle: %w", err)
	}

	member, err := s.memberRepo.FindByGithubUsername(input.GithubUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownGithubUsername
		}
		return nil, fmt.Errorf("failed to resolve member: %w", err)
	}

	if strings.TrimSpace(input.URL) == "" {
		return nil, ErrSubmissionURLMissing
	}

	if existing, err := s.submissionRepo.FindByCommentID(input.CommentID); err == nil {
		return &RecordSubmissionResult{Submission: existing, AlreadyRecorded: true}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check comment id: %w", err)
	}

	if existing, err := s.submissionRepo.FindByCycleAndMember(cycle.ID, member.ID); err == nil {
		return &RecordSubmissionResult{Submission: existing, AlreadyRecorded: true}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}

	submission := &models.Submission{
		CycleID:     cycle.ID,
		MemberID:    member.ID,
		URL:         input.URL,
		CommentID:   input.CommentID,
		SubmittedAt: time.Now(),
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent delivery of the same event;
			// the unique indexes hold, report the winner.
			if existing, findErr := s.submissionRepo.FindByCommentID(input.CommentID); findErr == nil {
				return &RecordSubmissionResult{Submission: existing, AlreadyRecorded: true}, nil
			}
			if existing, findErr := s.submissionRepo.FindByCycleAndMember(cycle.ID, member.ID); findErr == nil {
				return &RecordSubmissionResult{Submission: existing, AlreadyRecorded: true}, nil
			}
			return nil, apperrors.Duplicate("submission already recorded")
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	result := &RecordSubmissionResult{
		Submission: submission,
		Event: &models.SubmissionRecorded{
			MemberName: member.Name,
			CycleLabel: cycle.Label(),
			URL:        input.URL,
		},
	}

	if webhookURL, err := s.resolveWebhookURL(cycle.GenerationID); err == nil {
		result.WebhookURL = webhookURL
	}

	return result, nil
}

// resolveWebhookURL walks cycle -> generation -> organization to find the
// notification target.
func (s *SubmissionService) resolveWebhookURL(generationID uint64) (string, error) {
	generation, err := s.generationRepo.FindByID(generationID)
	if err != nil {
		return "", err
	}
	org, err := s.orgRepo.FindByID(generation.OrganizationID)
	if err != nil {
		return "", err
	}
	return org.WebhookURL, nil
}

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
	ErrGenerationNotFound     = apperrors.NotFound("generation not found")
	ErrActiveGenerationExists = apperrors.Conflict("organization already has an active generation")
	ErrMembershipNotApproved  = apperrors.Conflict("member is not an approved member of the organization")
	ErrCycleWeekExists        = apperrors.Conflict("a cycle already exists for this week")
)

// GenerationService handles generation and cycle lifecycle.
type GenerationService struct {
	generationRepo repository.GenerationRepository
	cycleRepo      repository.CycleRepository
	orgRepo        repository.OrganizationRepository
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(generationRepo repository.GenerationRepository, cycleRepo repository.CycleRepository, orgRepo repository.OrganizationRepository) *GenerationService {
	return &GenerationService{
		generationRepo: generationRepo,
		cycleRepo:      cycleRepo,
		orgRepo:        orgRepo,
	}
}

// CreateGenerationInput represents parameters to create a generation.
type CreateGenerationInput struct {
	OrganizationID uint64
	Name           string
	StartedAt      time.Time
	IsActive       bool
}

// CreateGeneration creates a generation. At most one generation may be
// active per organization; the unique pre-check here produces a friendly
// error, the storage index is the real guarantee under races.
func (s *GenerationService) CreateGeneration(input CreateGenerationInput) (*models.Generation, error) {
	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	generation := &models.Generation{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		StartedAt:      input.StartedAt,
		IsActive:       input.IsActive,
	}

	if err := generation.Validate(); err != nil {
		return nil, err
	}

	if input.IsActive {
		if err := s.ensureNoActiveGeneration(input.OrganizationID, 0); err != nil {
			return nil, err
		}
	}

	if err := s.generationRepo.Create(generation); err != nil {
		return nil, fmt.Errorf("failed to create generation: %w", err)
	}

	return generation, nil
}

// GetGeneration returns a generation by ID.
func (s *GenerationService) GetGeneration(id uint64) (*models.Generation, error) {
	generation, err := s.generationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenerationNotFound
		}
		return nil, fmt.Errorf("failed to find generation: %w", err)
	}
	return generation, nil
}

// GetActiveGeneration returns the organization's active generation.
func (s *GenerationService) GetActiveGeneration(orgID uint64) (*models.Generation, error) {
	generation, err := s.generationRepo.FindActiveByOrganization(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenerationNotFound
		}
		return nil, fmt.Errorf("failed to find active generation: %w", err)
	}
	return generation, nil
}

// ActivateGeneration marks a generation active, enforcing the
// one-active-per-organization invariant.
func (s *GenerationService) ActivateGeneration(id uint64) (*models.Generation, error) {
	generation, err := s.GetGeneration(id)
	if err != nil {
		return nil, err
	}

	if generation.IsActive {
		return generation, nil
	}

	if err := s.ensureNoActiveGeneration(generation.OrganizationID, generation.ID); err != nil {
		return nil, err
	}

	generation.IsActive = true
	if err := s.generationRepo.Update(generation); err != nil {
		return nil, fmt.Errorf("failed to activate generation: %w", err)
	}

	return generation, nil
}

// DeactivateGeneration marks a generation inactive.
func (s *GenerationService) DeactivateGeneration(id uint64) (*models.Generation, error) {
	generation, err := s.GetGeneration(id)
	if err != nil {
		return nil, err
	}

	generation.IsActive = false
	if err := s.generationRepo.Update(generation); err != nil {
		return nil, fmt.Errorf("failed to deactivate generation: %w", err)
	}

	return generation, nil
}

// JoinGeneration records a member joining a generation. The member's
// organization membership must be approved. Joining twice is idempotent.
func (s *GenerationService) JoinGeneration(generationID, memberID uint64) (*models.GenerationMember, error) {
	generation, err := s.GetGeneration(generationID)
	if err != nil {
		return nil, err
	}

	membership, err := s.orgRepo.FindMember(generation.OrganizationID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotApproved
		}
		return nil, fmt.Errorf("failed to verify organization membership: %w", err)
	}
	if !membership.IsActiveMember() {
		return nil, ErrMembershipNotApproved
	}

	if existing, err := s.generationRepo.FindMember(generationID, memberID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify generation membership: %w", err)
	}

	member := &models.GenerationMember{
		GenerationID: generationID,
		MemberID:     memberID,
	}

	if err := s.generationRepo.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.generationRepo.FindMember(generationID, memberID)
		}
		return nil, fmt.Errorf("failed to join generation: %w", err)
	}

	return member, nil
}

// CreateCycleInput represents parameters to create a cycle.
type CreateCycleInput struct {
	GenerationID uint64
	Week         int
	StartDate    time.Time
	EndDate      time.Time
	IssueURL     string
}

// CreateCycle creates a dated week inside a generation. The (generation,
// week) pair is unique.
func (s *GenerationService) CreateCycle(input CreateCycleInput) (*models.Cycle, error) {
	if _, err := s.GetGeneration(input.GenerationID); err != nil {
		return nil, err
	}

	cycle, err := models.NewCycle(input.GenerationID, input.Week, input.StartDate, input.EndDate, input.IssueURL)
	if err != nil {
		return nil, err
	}

	if _, err := s.cycleRepo.FindByGenerationAndWeek(input.GenerationID, input.Week); err == nil {
		return nil, ErrCycleWeekExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check cycle week: %w", err)
	}

	if err := s.cycleRepo.Create(cycle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Duplicate("a cycle already exists for this week")
		}
		return nil, fmt.Errorf("failed to create cycle: %w", err)
	}

	return cycle, nil
}

func (s *GenerationService) ensureNoActiveGeneration(orgID, excludeID uint64) error {
	active, err := s.generationRepo.FindActiveByOrganization(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check active generation: %w", err)
	}
	if active.ID != excludeID {
		return ErrActiveGenerationExists
	}
	return nil
}

package repository

import (
	"time"

	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/utils"
)

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create creates a new member
	Create(member *models.Member) error

	// FindByID finds a member by ID
	FindByID(id uint64) (*models.Member, error)

	// FindByGithubUsername finds a member by GitHub username
	FindByGithubUsername(username string) (*models.Member, error)

	// Update updates a member
	Update(member *models.Member) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindBySlug finds an organization by slug
	FindBySlug(slug string) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// AddMember adds a membership record to an organization
	AddMember(member *models.OrganizationMember) error

	// FindMember finds a membership by its composite natural key
	FindMember(organizationID, memberID uint64) (*models.OrganizationMember, error)

	// UpdateMember updates a membership record
	UpdateMember(member *models.OrganizationMember) error

	// ListMembers lists a page of an organization's memberships
	ListMembers(organizationID uint64, params utils.PaginationParams) ([]models.OrganizationMember, int64, error)

	// ListMembersByStatus lists all memberships of an organization in the given status
	ListMembersByStatus(organizationID uint64, status models.MembershipStatus) ([]models.OrganizationMember, error)
}

// GenerationRepository defines the interface for generation data access
type GenerationRepository interface {
	// Create creates a new generation
	Create(generation *models.Generation) error

	// FindByID finds a generation by ID
	FindByID(id uint64) (*models.Generation, error)

	// FindActiveByOrganization finds the active generation of an organization
	FindActiveByOrganization(organizationID uint64) (*models.Generation, error)

	// ListActive lists the active generations across all organizations
	ListActive() ([]models.Generation, error)

	// Update updates a generation
	Update(generation *models.Generation) error

	// AddMember records a member joining a generation
	AddMember(member *models.GenerationMember) error

	// FindMember finds a generation membership by its composite natural key
	FindMember(generationID, memberID uint64) (*models.GenerationMember, error)
}

// CycleRepository defines the interface for cycle data access
type CycleRepository interface {
	// Create creates a new cycle
	Create(cycle *models.Cycle) error

	// FindByID finds a cycle by ID
	FindByID(id uint64) (*models.Cycle, error)

	// FindByGenerationAndWeek finds a cycle by its composite natural key
	FindByGenerationAndWeek(generationID uint64, week int) (*models.Cycle, error)

	// FindByIssueURL finds a cycle by its external issue reference
	FindByIssueURL(issueURL string) (*models.Cycle, error)

	// ListByGeneration lists all cycles of a generation ordered by week
	ListByGeneration(generationID uint64) ([]models.Cycle, error)

	// FindActiveByGeneration finds the cycle whose date range contains now
	FindActiveByGeneration(generationID uint64, now time.Time) (*models.Cycle, error)

	// ListEndingWithin lists cycles of a generation whose deadline falls in (from, to]
	ListEndingWithin(generationID uint64, from, to time.Time) ([]models.Cycle, error)
}

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	// Create creates a new submission
	Create(submission *models.Submission) error

	// FindByCycleAndMember finds a submission by its composite natural key
	FindByCycleAndMember(cycleID, memberID uint64) (*models.Submission, error)

	// FindByCommentID finds a submission by its external comment identifier
	FindByCommentID(commentID string) (*models.Submission, error)

	// ListByCycle lists all submissions for a cycle
	ListByCycle(cycleID uint64) ([]models.Submission, error)
}

package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/repository"
	"github.com/bloggang/writing-challenge-api/internal/utils"
)

var (
	ErrOrganizationNotFound = apperrors.NotFound("organization not found")
	ErrSlugTaken            = apperrors.Conflict("an organization with this slug already exists")
	ErrMembershipNotFound   = apperrors.NotFound("organization member not found")
)

// OrganizationService provides business logic for organizations and their
// membership lifecycle.
type OrganizationService struct {
	orgRepo    repository.OrganizationRepository
	memberRepo repository.MemberRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, memberRepo repository.MemberRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name       string
	Slug       string
	WebhookURL string
	OwnerID    uint64
}

// CreateOrganization creates a new organization and approves the owner's
// membership. The slug is derived from the name when absent.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*models.Organization, error) {
	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	org := &models.Organization{
		Name:       input.Name,
		Slug:       slug,
		WebhookURL: input.WebhookURL,
		IsActive:   true,
	}

	if err := org.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.orgRepo.FindBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	if _, err := s.memberRepo.FindByID(input.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	if err := s.orgRepo.Create(org); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	now := time.Now()
	owner := &models.OrganizationMember{
		OrganizationID: org.ID,
		MemberID:       input.OwnerID,
		Role:           models.RoleOwner,
		Status:         models.StatusApproved,
		JoinedAt:       now,
		UpdatedAt:      now,
	}

	if err := s.orgRepo.AddMember(owner); err != nil {
		return nil, fmt.Errorf("failed to add owner to organization: %w", err)
	}

	return org, nil
}

// GetOrganizationBySlug returns an organization by slug.
func (s *OrganizationService) GetOrganizationBySlug(slug string) (*models.Organization, error) {
	org, err := s.orgRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// DeactivateOrganization soft-deactivates an organization. History is kept,
// nothing is deleted.
func (s *OrganizationService) DeactivateOrganization(orgID uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	org.IsActive = false
	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to deactivate organization: %w", err)
	}

	return org, nil
}

// RequestJoin creates a pending membership for the member. If a membership
// record already exists in any status it is returned unchanged.
func (s *OrganizationService) RequestJoin(orgID, memberID uint64) (*models.OrganizationMember, error) {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if _, err := s.memberRepo.FindByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if existing, err := s.orgRepo.FindMember(orgID, memberID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	now := time.Now()
	member := &models.OrganizationMember{
		OrganizationID: orgID,
		MemberID:       memberID,
		Role:           models.RoleMember,
		Status:         models.StatusPending,
		JoinedAt:       now,
		UpdatedAt:      now,
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent join for the same pair; the unique index is the
			// real guarantee, return the winning record.
			return s.orgRepo.FindMember(orgID, memberID)
		}
		return nil, fmt.Errorf("failed to add member to organization: %w", err)
	}

	return member, nil
}

// ApproveMember approves a pending membership.
func (s *OrganizationService) ApproveMember(orgID, memberID uint64) (*models.OrganizationMember, error) {
	return s.transitionMember(orgID, memberID, (*models.OrganizationMember).Approve)
}

// RejectMember rejects a pending membership.
func (s *OrganizationService) RejectMember(orgID, memberID uint64) (*models.OrganizationMember, error) {
	return s.transitionMember(orgID, memberID, (*models.OrganizationMember).Reject)
}

// DeactivateMember deactivates an approved membership.
func (s *OrganizationService) DeactivateMember(orgID, memberID uint64) (*models.OrganizationMember, error) {
	return s.transitionMember(orgID, memberID, (*models.OrganizationMember).Deactivate)
}

func (s *OrganizationService) transitionMember(orgID, memberID uint64, transition func(*models.OrganizationMember) error) (*models.OrganizationMember, error) {
	member, err := s.orgRepo.FindMember(orgID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find organization member: %w", err)
	}

	if err := transition(member); err != nil {
		return nil, err
	}

	member.UpdatedAt = time.Now()
	if err := s.orgRepo.UpdateMember(member); err != nil {
		return nil, fmt.Errorf("failed to update organization member: %w", err)
	}

	return member, nil
}

// ChangeMemberRole updates a membership's role. Legal in any status.
func (s *OrganizationService) ChangeMemberRole(orgID, memberID uint64, role models.MemberRole) (*models.OrganizationMember, error) {
	member, err := s.orgRepo.FindMember(orgID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find organization member: %w", err)
	}

	if err := member.ChangeRole(role); err != nil {
		return nil, err
	}

	member.UpdatedAt = time.Now()
	if err := s.orgRepo.UpdateMember(member); err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}

	return member, nil
}

// ListMembers returns a page of an organization's memberships.
func (s *OrganizationService) ListMembers(orgID uint64, params utils.PaginationParams) ([]models.OrganizationMember, int64, error) {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrOrganizationNotFound
		}
		return nil, 0, fmt.Errorf("failed to find organization: %w", err)
	}

	members, total, err := s.orgRepo.ListMembers(orgID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list organization members: %w", err)
	}
	return members, total, nil
}

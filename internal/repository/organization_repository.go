package repository

import (
	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/database"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/utils"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organization by slug
func (r *GormOrganizationRepository) FindBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// AddMember adds a membership record to an organization
func (r *GormOrganizationRepository) AddMember(member *models.OrganizationMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a membership by its composite natural key
func (r *GormOrganizationRepository) FindMember(organizationID, memberID uint64) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Where("organization_id = ? AND member_id = ?", organizationID, memberID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMember updates a membership record
func (r *GormOrganizationRepository) UpdateMember(member *models.OrganizationMember) error {
	return r.db.Save(member).Error
}

// ListMembers lists a page of an organization's memberships
func (r *GormOrganizationRepository) ListMembers(organizationID uint64, params utils.PaginationParams) ([]models.OrganizationMember, int64, error) {
	var total int64
	if err := r.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ?", organizationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.OrganizationMember
	if err := r.db.Preload("Member").
		Where("organization_id = ?", organizationID).
		Order("joined_at").
		Scopes(database.Paginate(params)).
		Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ListMembersByStatus lists all memberships of an organization in the given status
func (r *GormOrganizationRepository) ListMembersByStatus(organizationID uint64, status models.MembershipStatus) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	if err := r.db.Preload("Member").
		Where("organization_id = ? AND status = ?", organizationID, status).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

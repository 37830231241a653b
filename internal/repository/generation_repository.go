package repository

import (
	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/models"
)

// GormGenerationRepository is a GORM implementation of GenerationRepository
type GormGenerationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository creates a new GenerationRepository
func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &GormGenerationRepository{db: db}
}

// Create creates a new generation
func (r *GormGenerationRepository) Create(generation *models.Generation) error {
	return r.db.Create(generation).Error
}

// FindByID finds a generation by ID
func (r *GormGenerationRepository) FindByID(id uint64) (*models.Generation, error) {
	var generation models.Generation
	if err := r.db.First(&generation, id).Error; err != nil {
		return nil, err
	}
	return &generation, nil
}

// FindActiveByOrganization finds the active generation of an organization
func (r *GormGenerationRepository) FindActiveByOrganization(organizationID uint64) (*models.Generation, error) {
	var generation models.Generation
	if err := r.db.Where("organization_id = ? AND is_active = ?", organizationID, true).
		First(&generation).Error; err != nil {
		return nil, err
	}
	return &generation, nil
}

// ListActive lists the active generations across all organizations
func (r *GormGenerationRepository) ListActive() ([]models.Generation, error) {
	var generations []models.Generation
	if err := r.db.Preload("Organization").
		Where("is_active = ?", true).
		Find(&generations).Error; err != nil {
		return nil, err
	}
	return generations, nil
}

// Update updates a generation
func (r *GormGenerationRepository) Update(generation *models.Generation) error {
	return r.db.Save(generation).Error
}

// AddMember records a member joining a generation
func (r *GormGenerationRepository) AddMember(member *models.GenerationMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a generation membership by its composite natural key
func (r *GormGenerationRepository) FindMember(generationID, memberID uint64) (*models.GenerationMember, error) {
	var member models.GenerationMember
	if err := r.db.Where("generation_id = ? AND member_id = ?", generationID, memberID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

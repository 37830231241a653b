package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/models"
)

// GormCycleRepository is a GORM implementation of CycleRepository
type GormCycleRepository struct {
	db *gorm.DB
}

// NewCycleRepository creates a new CycleRepository
func NewCycleRepository(db *gorm.DB) CycleRepository {
	return &GormCycleRepository{db: db}
}

// Create creates a new cycle
func (r *GormCycleRepository) Create(cycle *models.Cycle) error {
	return r.db.Create(cycle).Error
}

// FindByID finds a cycle by ID
func (r *GormCycleRepository) FindByID(id uint64) (*models.Cycle, error) {
	var cycle models.Cycle
	if err := r.db.First(&cycle, id).Error; err != nil {
		return nil, err
	}
	return &cycle, nil
}

// FindByGenerationAndWeek finds a cycle by its composite natural key
func (r *GormCycleRepository) FindByGenerationAndWeek(generationID uint64, week int) (*models.Cycle, error) {
	var cycle models.Cycle
	if err := r.db.Where("generation_id = ? AND week = ?", generationID, week).
		First(&cycle).Error; err != nil {
		return nil, err
	}
	return &cycle, nil
}

// FindByIssueURL finds a cycle by its external issue reference
func (r *GormCycleRepository) FindByIssueURL(issueURL string) (*models.Cycle, error) {
	var cycle models.Cycle
	if err := r.db.Where("issue_url = ?", issueURL).First(&cycle).Error; err != nil {
		return nil, err
	}
	return &cycle, nil
}

// ListByGeneration lists all cycles of a generation ordered by week
func (r *GormCycleRepository) ListByGeneration(generationID uint64) ([]models.Cycle, error) {
	var cycles []models.Cycle
	if err := r.db.Where("generation_id = ?", generationID).
		Order("week").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

// FindActiveByGeneration finds the cycle whose date range contains now
func (r *GormCycleRepository) FindActiveByGeneration(generationID uint64, now time.Time) (*models.Cycle, error) {
	var cycle models.Cycle
	if err := r.db.Where("generation_id = ? AND start_date <= ? AND end_date > ?", generationID, now, now).
		Order("week").
		First(&cycle).Error; err != nil {
		return nil, err
	}
	return &cycle, nil
}

// ListEndingWithin lists cycles of a generation whose deadline falls in (from, to]
func (r *GormCycleRepository) ListEndingWithin(generationID uint64, from, to time.Time) ([]models.Cycle, error) {
	var cycles []models.Cycle
	if err := r.db.Where("generation_id = ? AND end_date > ? AND end_date <= ?", generationID, from, to).
		Order("end_date").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

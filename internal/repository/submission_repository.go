package repository

import (
	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/models"
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create creates a new submission
func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// FindByCycleAndMember finds a submission by its composite natural key
func (r *GormSubmissionRepository) FindByCycleAndMember(cycleID, memberID uint64) (*models.Submission, error) {
	var submission models.Submission
	if err := r.db.Where("cycle_id = ? AND member_id = ?", cycleID, memberID).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// FindByCommentID finds a submission by its external comment identifier
func (r *GormSubmissionRepository) FindByCommentID(commentID string) (*models.Submission, error) {
	var submission models.Submission
	if err := r.db.Where("comment_id = ?", commentID).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByCycle lists all submissions for a cycle
func (r *GormSubmissionRepository) ListByCycle(cycleID uint64) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.Preload("Member").
		Where("cycle_id = ?", cycleID).
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

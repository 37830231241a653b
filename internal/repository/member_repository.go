package repository

import (
	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/models"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindByID finds a member by ID
func (r *GormMemberRepository) FindByID(id uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByGithubUsername finds a member by GitHub username
func (r *GormMemberRepository) FindByGithubUsername(username string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("github_username = ?", username).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a member
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/constants"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
)

type Generation struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Name           string         `gorm:"type:varchar(50);not null" json:"name"`
	StartedAt      time.Time      `json:"started_at"`
	IsActive       bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Cycles       []Cycle      `gorm:"foreignKey:GenerationID" json:"cycles,omitempty"`
}

// Validate checks the generation's value constraints.
func (g *Generation) Validate() error {
	name := strings.TrimSpace(g.Name)
	if name == "" {
		return apperrors.Validation("generation name cannot be empty")
	}
	if len(name) > constants.MaxNameLength {
		return apperrors.Validation("generation name must be at most 50 characters")
	}
	return nil
}

package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/constants"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	discordWebhookPattern = regexp.MustCompile(`^https://(?:discord|discordapp)\.com/api/webhooks/[0-9]+/[A-Za-z0-9_-]+$`)
)

type Organization struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"type:varchar(50);not null" json:"name"`
	Slug       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	WebhookURL string         `gorm:"type:varchar(255)" json:"-"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members     []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	Generations []Generation         `gorm:"foreignKey:OrganizationID" json:"generations,omitempty"`
}

// Validate checks the organization's value constraints.
func (o *Organization) Validate() error {
	name := strings.TrimSpace(o.Name)
	if name == "" {
		return apperrors.Validation("organization name cannot be empty")
	}
	if len(name) > constants.MaxNameLength {
		return apperrors.Validation("organization name must be at most 50 characters")
	}
	if len(o.Slug) < constants.MinSlugLength || len(o.Slug) > constants.MaxSlugLength || !slugPattern.MatchString(o.Slug) {
		return apperrors.Validation("slug must be 2-50 lowercase characters, hyphen separated")
	}
	if o.WebhookURL != "" && !discordWebhookPattern.MatchString(o.WebhookURL) {
		return apperrors.Validation("webhook URL must be a Discord webhook URL")
	}
	return nil
}

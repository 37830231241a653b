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
	// GitHub usernames: alphanumeric with single inner hyphens, max 39 chars.
	githubUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*$`)

	// Discord user IDs are snowflakes: 17-19 digits.
	discordIDPattern = regexp.MustCompile(`^[0-9]{17,19}$`)
)

type Member struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"type:varchar(50);not null" json:"name"`
	GithubUsername *string        `gorm:"type:varchar(39);uniqueIndex" json:"github_username,omitempty"`
	DiscordID      *string        `gorm:"type:varchar(20)" json:"discord_id,omitempty"`
	PasswordHash   string         `gorm:"type:varchar(255)" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Memberships []OrganizationMember `gorm:"foreignKey:MemberID" json:"-"`
	Submissions []Submission         `gorm:"foreignKey:MemberID" json:"-"`
}

// Validate checks the member's value constraints.
func (m *Member) Validate() error {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return apperrors.Validation("member name cannot be empty")
	}
	if len(name) > constants.MaxNameLength {
		return apperrors.Validation("member name must be at most 50 characters")
	}
	if m.GithubUsername != nil {
		if len(*m.GithubUsername) > 39 || !githubUsernamePattern.MatchString(*m.GithubUsername) {
			return apperrors.Validation("invalid GitHub username")
		}
	}
	if m.DiscordID != nil && !discordIDPattern.MatchString(*m.DiscordID) {
		return apperrors.Validation("invalid Discord ID")
	}
	return nil
}

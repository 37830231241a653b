package dto

import (
	"github.com/bloggang/writing-challenge-api/internal/models"
)

// MemberDTO represents a member in API responses
type MemberDTO struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	GithubUsername *string `json:"github_username,omitempty"`
	DiscordID      *string `json:"discord_id,omitempty"`
}

// ToMemberDTO converts a Member model to MemberDTO
func ToMemberDTO(member models.Member) MemberDTO {
	return MemberDTO{
		ID:             member.ID,
		Name:           member.Name,
		GithubUsername: member.GithubUsername,
		DiscordID:      member.DiscordID,
	}
}

package dto

import (
	"time"

	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/utils"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
}

// OrganizationMemberDTO represents a membership in an organization
type OrganizationMemberDTO struct {
	Member   MemberDTO               `json:"member"`
	Role     models.MemberRole       `json:"role"`
	Status   models.MembershipStatus `json:"status"`
	JoinedAt time.Time               `json:"joined_at"`
}

// MemberListResponse represents a paginated list of an organization's members
type MemberListResponse struct {
	Members    []OrganizationMemberDTO  `json:"members"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:       org.ID,
		Name:     org.Name,
		Slug:     org.Slug,
		IsActive: org.IsActive,
	}
}

// ToOrganizationMemberDTO converts a membership to DTO
func ToOrganizationMemberDTO(member models.OrganizationMember) OrganizationMemberDTO {
	return OrganizationMemberDTO{
		Member:   ToMemberDTO(member.Member),
		Role:     member.Role,
		Status:   member.Status,
		JoinedAt: member.JoinedAt,
	}
}

// ToMemberListResponse converts memberships to a paginated response
func ToMemberListResponse(members []models.OrganizationMember, params utils.PaginationParams, total int64) MemberListResponse {
	memberDTOs := make([]OrganizationMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToOrganizationMemberDTO(member)
	}

	return MemberListResponse{
		Members: memberDTOs,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}

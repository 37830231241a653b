package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/bloggang/writing-challenge-api/internal/database"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/models"
)

// RequireOrganizationAccess checks that the member has an approved
// membership in the organization addressed by the :slug parameter.
func RequireOrganizationAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		memberID, exists := GetMemberID(c)
		if !exists {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var org models.Organization
		if err := database.GetDB().Where("slug = ?", slug).First(&org).Error; err != nil {
			apperrors.NotFoundResponse(c, "Organization not found")
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking organization existence
		var member models.OrganizationMember
		err := database.GetDB().
			Where("organization_id = ? AND member_id = ?", org.ID, memberID).
			First(&member).Error
		if err != nil || !member.IsActiveMember() {
			apperrors.NotFoundResponse(c, "Organization not found")
			c.Abort()
			return
		}

		c.Set("organization", org)
		c.Set("organization_member", member)
		c.Next()
	}
}

// RequireOrganizationAdmin checks that the member is an owner or admin of
// the organization loaded by RequireOrganizationAccess.
func RequireOrganizationAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberInterface, exists := c.Get("organization_member")
		if !exists {
			apperrors.Forbidden(c, "Organization access required")
			c.Abort()
			return
		}

		member, ok := memberInterface.(models.OrganizationMember)
		if !ok {
			apperrors.InternalError(c, "Invalid organization member data")
			c.Abort()
			return
		}

		if member.Role != models.RoleOwner && member.Role != models.RoleAdmin {
			apperrors.Forbidden(c, "Only organization owners and admins can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

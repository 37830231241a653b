package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bloggang/writing-challenge-api/internal/dto"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/middleware"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/services"
	"github.com/bloggang/writing-challenge-api/internal/utils"
)

// OrganizationHandler coordinates organization and membership endpoints.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateOrganization creates a new organization owned by the current member.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	memberID, exists := middleware.GetMemberID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	type CreateOrgRequest struct {
		Name       string `json:"name" binding:"required"`
		Slug       string `json:"slug"`
		WebhookURL string `json:"webhook_url"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:       req.Name,
		Slug:       req.Slug,
		WebhookURL: req.WebhookURL,
		OwnerID:    memberID,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org))
}

// GetOrganization returns organization details with the caller's role.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	// Organization is already loaded by RequireOrganizationAccess middleware
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	memberInterface, _ := c.Get("organization_member")
	member := memberInterface.(models.OrganizationMember)

	c.JSON(http.StatusOK, gin.H{
		"organization": dto.ToOrganizationDTO(org),
		"your_role":    member.Role,
	})
}

// ListMembers returns a page of the organization's memberships.
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	params := utils.GetPaginationParams(c)

	members, total, err := h.orgService.ListMembers(org.ID, params)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberListResponse(members, params, total))
}

// JoinOrganization requests membership for the current member. Repeating
// the request returns the existing membership unchanged.
func (h *OrganizationHandler) JoinOrganization(c *gin.Context) {
	memberID, exists := middleware.GetMemberID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	org, err := h.orgService.GetOrganizationBySlug(c.Param("slug"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	membership, err := h.orgService.RequestJoin(org.ID, memberID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationMemberDTO(*membership))
}

// ApproveMember approves a pending membership.
func (h *OrganizationHandler) ApproveMember(c *gin.Context) {
	h.transitionMember(c, h.orgService.ApproveMember)
}

// RejectMember rejects a pending membership.
func (h *OrganizationHandler) RejectMember(c *gin.Context) {
	h.transitionMember(c, h.orgService.RejectMember)
}

// DeactivateMember deactivates an approved membership.
func (h *OrganizationHandler) DeactivateMember(c *gin.Context) {
	h.transitionMember(c, h.orgService.DeactivateMember)
}

func (h *OrganizationHandler) transitionMember(c *gin.Context, transition func(uint64, uint64) (*models.OrganizationMember, error)) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	targetID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid member ID")
		return
	}

	membership, err := transition(org.ID, targetID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationMemberDTO(*membership))
}

// ChangeMemberRole updates a membership's role.
func (h *OrganizationHandler) ChangeMemberRole(c *gin.Context) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	targetID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid member ID")
		return
	}

	type ChangeRoleRequest struct {
		Role models.MemberRole `json:"role" binding:"required"`
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	membership, err := h.orgService.ChangeMemberRole(org.ID, targetID, req.Role)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationMemberDTO(*membership))
}

// DeactivateOrganization soft-deactivates the organization.
func (h *OrganizationHandler) DeactivateOrganization(c *gin.Context) {
	orgInterface, _ := c.Get("organization")
	org := orgInterface.(models.Organization)

	updated, err := h.orgService.DeactivateOrganization(org.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*updated))
}

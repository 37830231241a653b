package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/bloggang/writing-challenge-api/internal/constants"
	"github.com/bloggang/writing-challenge-api/internal/dto"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/middleware"
	"github.com/bloggang/writing-challenge-api/internal/services"
)

// AuthHandler coordinates member registration and session handling.
type AuthHandler struct {
	memberService *services.MemberService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(memberService *services.MemberService) *AuthHandler {
	return &AuthHandler{
		memberService: memberService,
	}
}

// Register creates a new member.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name           string  `json:"name" binding:"required,min=1,max=50"`
		GithubUsername *string `json:"github_username"`
		DiscordID      *string `json:"discord_id"`
		Password       string  `json:"password"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.RegisterMember(services.RegisterMemberInput{
		Name:           req.Name,
		GithubUsername: req.GithubUsername,
		DiscordID:      req.DiscordID,
		Password:       req.Password,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberDTO(*member))
}

// Login authenticates a member and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		GithubUsername string `json:"github_username" binding:"required"`
		Password       string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.Login(services.LoginInput{
		GithubUsername: req.GithubUsername,
		Password:       req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apperrors.Unauthorized(c, err.Error())
			return
		}
		apperrors.Respond(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyMemberID, member.ID)
	if err := session.Save(); err != nil {
		apperrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*member))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apperrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentMember returns the authenticated member.
func (h *AuthHandler) GetCurrentMember(c *gin.Context) {
	memberID, exists := middleware.GetMemberID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	member, err := h.memberService.GetMember(memberID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*member))
}

// UpdateCurrentMember updates the authenticated member's name and handles.
func (h *AuthHandler) UpdateCurrentMember(c *gin.Context) {
	memberID, exists := middleware.GetMemberID(c)
	if !exists {
		apperrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateRequest struct {
		Name      *string `json:"name"`
		DiscordID *string `json:"discord_id"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateMember(memberID, services.UpdateMemberInput{
		Name:      req.Name,
		DiscordID: req.DiscordID,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*member))
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/constants"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/repository"
)

var (
	ErrMemberNotFound        = apperrors.NotFound("member not found")
	ErrGithubUsernameTaken   = apperrors.Conflict("GitHub username is already registered")
	ErrPasswordTooShort      = apperrors.Validation("password too short")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrGithubUsernameMissing = apperrors.Validation("GitHub username is required to log in")
)

// MemberService handles member registration and identity.
type MemberService struct {
	memberRepo repository.MemberRepository
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo repository.MemberRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
	}
}

// RegisterMemberInput represents the required information to register a member.
type RegisterMemberInput struct {
	Name           string
	GithubUsername *string
	DiscordID      *string
	Password       string
}

// RegisterMember creates a new member. A password is only required for
// members who will log into the dashboard.
func (s *MemberService) RegisterMember(input RegisterMemberInput) (*models.Member, error) {
	member := &models.Member{
		Name:           strings.TrimSpace(input.Name),
		GithubUsername: input.GithubUsername,
		DiscordID:      input.DiscordID,
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}

	if input.GithubUsername != nil {
		if _, err := s.memberRepo.FindByGithubUsername(*input.GithubUsername); err == nil {
			return nil, ErrGithubUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check GitHub username: %w", err)
		}
	}

	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		member.PasswordHash = string(hashed)
	}

	if err := s.memberRepo.Create(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGithubUsernameTaken
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// LoginInput holds the credentials for dashboard authentication.
type LoginInput struct {
	GithubUsername string
	Password       string
}

// Login verifies credentials and returns the authenticated member.
func (s *MemberService) Login(input LoginInput) (*models.Member, error) {
	member, err := s.memberRepo.FindByGithubUsername(input.GithubUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if member.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return member, nil
}

// GetMember retrieves a member by ID.
func (s *MemberService) GetMember(id uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	return member, nil
}

// UpdateMemberInput represents optional member profile updates. Identity
// fields other than name and handles cannot change.
type UpdateMemberInput struct {
	Name      *string
	DiscordID *string
}

// UpdateMember updates a member's name and chat handle.
func (s *MemberService) UpdateMember(id uint64, input UpdateMemberInput) (*models.Member, error) {
	member, err := s.GetMember(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		member.Name = strings.TrimSpace(*input.Name)
	}
	if input.DiscordID != nil {
		member.DiscordID = input.DiscordID
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

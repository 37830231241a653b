package models

import (
	"time"

	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

// IsValid reports whether the role is a known value.
func (r MemberRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

type MembershipStatus string

const (
	StatusPending  MembershipStatus = "PENDING"
	StatusApproved MembershipStatus = "APPROVED"
	StatusRejected MembershipStatus = "REJECTED"
	StatusInactive MembershipStatus = "INACTIVE"
)

type MembershipAction string

const (
	ActionApprove    MembershipAction = "approve"
	ActionReject     MembershipAction = "reject"
	ActionDeactivate MembershipAction = "deactivate"
)

// membershipTransitions is the closed transition table for membership status.
// A (status, action) pair absent from the table is an illegal transition.
var membershipTransitions = map[MembershipStatus]map[MembershipAction]MembershipStatus{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
	StatusApproved: {
		ActionDeactivate: StatusInactive,
	},
}

var transitionConflicts = map[MembershipAction]string{
	ActionApprove:    "only pending members can be approved",
	ActionReject:     "only pending members can be rejected",
	ActionDeactivate: "only approved members can be deactivated",
}

type OrganizationMember struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	OrganizationID uint64           `gorm:"not null;uniqueIndex:idx_org_members_org_member" json:"organization_id"`
	MemberID       uint64           `gorm:"not null;uniqueIndex:idx_org_members_org_member" json:"member_id"`
	Role           MemberRole       `gorm:"type:varchar(20);not null" json:"role"`
	Status         MembershipStatus `gorm:"type:varchar(20);not null" json:"status"`
	JoinedAt       time.Time        `json:"joined_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Member       Member       `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// transition applies an action through the transition table.
func (m *OrganizationMember) transition(action MembershipAction) error {
	next, ok := membershipTransitions[m.Status][action]
	if !ok {
		return apperrors.Conflict(transitionConflicts[action])
	}
	m.Status = next
	return nil
}

// Approve moves a pending membership to approved.
func (m *OrganizationMember) Approve() error {
	return m.transition(ActionApprove)
}

// Reject moves a pending membership to rejected.
func (m *OrganizationMember) Reject() error {
	return m.transition(ActionReject)
}

// Deactivate moves an approved membership to inactive.
func (m *OrganizationMember) Deactivate() error {
	return m.transition(ActionDeactivate)
}

// ChangeRole updates the role; legal in any status.
func (m *OrganizationMember) ChangeRole(role MemberRole) error {
	if !role.IsValid() {
		return apperrors.Validation("invalid member role")
	}
	m.Role = role
	return nil
}

// IsActiveMember reports whether the member counts as active for generation
// joining and status aggregation.
func (m *OrganizationMember) IsActiveMember() bool {
	return m.Status == StatusApproved
}

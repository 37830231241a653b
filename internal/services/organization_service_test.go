package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/utils"
)

func TestCreateOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")

	org, err := env.orgService.CreateOrganization(CreateOrganizationInput{
		Name:    "Acme Writers",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "acme-writers", org.Slug)
	require.True(t, org.IsActive)

	// The owner is approved immediately, no pending step.
	membership, err := env.orgService.RequestJoin(org.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, membership.Role)
	require.Equal(t, models.StatusApproved, membership.Status)
}

func TestCreateOrganization_SlugTaken(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	env.createOrganization(t, "Acme Writers", owner.ID)

	_, err := env.orgService.CreateOrganization(CreateOrganizationInput{
		Name:    "Different Name",
		Slug:    "acme-writers",
		OwnerID: owner.ID,
	})
	require.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateOrganization_InvalidWebhookURL(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")

	_, err := env.orgService.CreateOrganization(CreateOrganizationInput{
		Name:       "Acme Writers",
		WebhookURL: "https://example.com/not-a-discord-webhook",
		OwnerID:    owner.ID,
	})
	require.Error(t, err)
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRequestJoin_Idempotent(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	member := env.createMember(t, "Bob", "bob")

	first, err := env.orgService.RequestJoin(org.ID, member.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, first.Status)
	require.Equal(t, models.RoleMember, first.Role)

	second, err := env.orgService.RequestJoin(org.ID, member.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, models.StatusPending, second.Status)
}

func TestRequestJoin_AfterRejectionReturnsRecordUnchanged(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	member := env.createMember(t, "Bob", "bob")

	_, err := env.orgService.RequestJoin(org.ID, member.ID)
	require.NoError(t, err)
	_, err = env.orgService.RejectMember(org.ID, member.ID)
	require.NoError(t, err)

	membership, err := env.orgService.RequestJoin(org.ID, member.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, membership.Status)
}

func TestApproveMember(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	member := env.createMember(t, "Bob", "bob")

	_, err := env.orgService.RequestJoin(org.ID, member.ID)
	require.NoError(t, err)

	membership, err := env.orgService.ApproveMember(org.ID, member.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, membership.Status)

	// Approving again is a conflict, not a no-op.
	_, err = env.orgService.ApproveMember(org.ID, member.ID)
	require.Error(t, err)
	require.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestApproveMember_NoMembership(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	member := env.createMember(t, "Bob", "bob")

	_, err := env.orgService.ApproveMember(org.ID, member.ID)
	require.ErrorIs(t, err, ErrMembershipNotFound)
}

func TestDeactivateMember(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	member := env.createMember(t, "Bob", "bob")
	env.approveJoin(t, org.ID, member.ID)

	membership, err := env.orgService.DeactivateMember(org.ID, member.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusInactive, membership.Status)
	require.False(t, membership.IsActiveMember())
}

func TestChangeMemberRole(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	member := env.createMember(t, "Bob", "bob")
	env.approveJoin(t, org.ID, member.ID)

	membership, err := env.orgService.ChangeMemberRole(org.ID, member.ID, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, membership.Role)
	require.Equal(t, models.StatusApproved, membership.Status)
}

func TestDeactivateOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)

	deactivated, err := env.orgService.DeactivateOrganization(org.ID)
	require.NoError(t, err)
	require.False(t, deactivated.IsActive)

	// Membership history survives deactivation.
	membership, err := env.orgService.RequestJoin(org.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, membership.Status)
}

func TestListMembers(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)

	for _, name := range []string{"Bob", "Carol", "Dave"} {
		member := env.createMember(t, name, "")
		_, err := env.orgService.RequestJoin(org.ID, member.ID)
		require.NoError(t, err)
	}

	members, total, err := env.orgService.ListMembers(org.ID, utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 4, total)
	require.Len(t, members, 2)
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
)

func TestCreateGeneration_SingleActivePerOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)

	env.createActiveGeneration(t, org.ID, "Season 1")

	_, err := env.generationService.CreateGeneration(CreateGenerationInput{
		OrganizationID: org.ID,
		Name:           "Season 2",
		StartedAt:      time.Now(),
		IsActive:       true,
	})
	require.ErrorIs(t, err, ErrActiveGenerationExists)

	// An inactive generation can coexist.
	second, err := env.generationService.CreateGeneration(CreateGenerationInput{
		OrganizationID: org.ID,
		Name:           "Season 2",
		StartedAt:      time.Now(),
	})
	require.NoError(t, err)
	require.False(t, second.IsActive)
}

func TestActivateGeneration(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)

	first := env.createActiveGeneration(t, org.ID, "Season 1")
	second, err := env.generationService.CreateGeneration(CreateGenerationInput{
		OrganizationID: org.ID,
		Name:           "Season 2",
		StartedAt:      time.Now(),
	})
	require.NoError(t, err)

	_, err = env.generationService.ActivateGeneration(second.ID)
	require.ErrorIs(t, err, ErrActiveGenerationExists)

	_, err = env.generationService.DeactivateGeneration(first.ID)
	require.NoError(t, err)

	activated, err := env.generationService.ActivateGeneration(second.ID)
	require.NoError(t, err)
	require.True(t, activated.IsActive)

	// Activating an already-active generation is a no-op.
	again, err := env.generationService.ActivateGeneration(second.ID)
	require.NoError(t, err)
	require.True(t, again.IsActive)
}

func TestJoinGeneration_RequiresApprovedMembership(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	generation := env.createActiveGeneration(t, org.ID, "Season 1")

	outsider := env.createMember(t, "Bob", "bob")
	_, err := env.generationService.JoinGeneration(generation.ID, outsider.ID)
	require.ErrorIs(t, err, ErrMembershipNotApproved)

	_, err = env.orgService.RequestJoin(org.ID, outsider.ID)
	require.NoError(t, err)
	_, err = env.generationService.JoinGeneration(generation.ID, outsider.ID)
	require.ErrorIs(t, err, ErrMembershipNotApproved, "pending membership is not enough")

	_, err = env.orgService.ApproveMember(org.ID, outsider.ID)
	require.NoError(t, err)
	joined, err := env.generationService.JoinGeneration(generation.ID, outsider.ID)
	require.NoError(t, err)
	require.Equal(t, generation.ID, joined.GenerationID)
	require.Equal(t, outsider.ID, joined.MemberID)

	// Joining again is idempotent.
	again, err := env.generationService.JoinGeneration(generation.ID, outsider.ID)
	require.NoError(t, err)
	require.Equal(t, joined.GenerationID, again.GenerationID)
	require.Equal(t, joined.MemberID, again.MemberID)
}

func TestCreateCycle(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	generation := env.createActiveGeneration(t, org.ID, "Season 1")

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	cycle := env.createCycle(t, generation.ID, 1, start, start.Add(7*24*time.Hour), "https://github.com/acme/challenge/issues/1")
	require.Equal(t, "Week 1", cycle.Label())
}

func TestCreateCycle_WeekAlreadyExists(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	generation := env.createActiveGeneration(t, org.ID, "Season 1")

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	env.createCycle(t, generation.ID, 1, start, start.Add(7*24*time.Hour), "https://github.com/acme/challenge/issues/1")

	_, err := env.generationService.CreateCycle(CreateCycleInput{
		GenerationID: generation.ID,
		Week:         1,
		StartDate:    start.Add(7 * 24 * time.Hour),
		EndDate:      start.Add(14 * 24 * time.Hour),
		IssueURL:     "https://github.com/acme/challenge/issues/2",
	})
	require.ErrorIs(t, err, ErrCycleWeekExists)
}

func TestCreateCycle_InvalidInput(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")
	org := env.createOrganization(t, "Acme Writers", owner.ID)
	generation := env.createActiveGeneration(t, org.ID, "Season 1")

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	_, err := env.generationService.CreateCycle(CreateCycleInput{
		GenerationID: generation.ID,
		Week:         0,
		StartDate:    start,
		EndDate:      start.Add(7 * 24 * time.Hour),
	})
	require.Error(t, err)
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = env.generationService.CreateCycle(CreateCycleInput{
		GenerationID: generation.ID,
		Week:         2,
		StartDate:    start.Add(7 * 24 * time.Hour),
		EndDate:      start,
	})
	require.Error(t, err)
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateGeneration_OrganizationNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.generationService.CreateGeneration(CreateGenerationInput{
		OrganizationID: 999,
		Name:           "Season 1",
		StartedAt:      time.Now(),
	})
	require.ErrorIs(t, err, ErrOrganizationNotFound)
}

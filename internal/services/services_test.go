package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/repository"
)

type serviceTestEnv struct {
	db                *gorm.DB
	memberService     *MemberService
	orgService        *OrganizationService
	generationService *GenerationService
	submissionService *SubmissionService
	statusService     *StatusService
}

func setupServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Generation{},
		&models.GenerationMember{},
		&models.Cycle{},
		&models.Submission{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	memberRepo := repository.NewMemberRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	generationRepo := repository.NewGenerationRepository(db)
	cycleRepo := repository.NewCycleRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	return &serviceTestEnv{
		db:                db,
		memberService:     NewMemberService(memberRepo),
		orgService:        NewOrganizationService(orgRepo, memberRepo),
		generationService: NewGenerationService(generationRepo, cycleRepo, orgRepo),
		submissionService: NewSubmissionService(submissionRepo, cycleRepo, memberRepo, generationRepo, orgRepo),
		statusService:     NewStatusService(orgRepo, generationRepo, cycleRepo, submissionRepo),
	}
}

func strptr(s string) *string {
	return &s
}

func (env *serviceTestEnv) createMember(t *testing.T, name, githubUsername string) *models.Member {
	t.Helper()

	input := RegisterMemberInput{Name: name}
	if githubUsername != "" {
		input.GithubUsername = strptr(githubUsername)
	}

	member, err := env.memberService.RegisterMember(input)
	require.NoError(t, err)
	return member
}

func (env *serviceTestEnv) createOrganization(t *testing.T, name string, ownerID uint64) *models.Organization {
	t.Helper()

	org, err := env.orgService.CreateOrganization(CreateOrganizationInput{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return org
}

func (env *serviceTestEnv) approveJoin(t *testing.T, orgID, memberID uint64) *models.OrganizationMember {
	t.Helper()

	_, err := env.orgService.RequestJoin(orgID, memberID)
	require.NoError(t, err)

	membership, err := env.orgService.ApproveMember(orgID, memberID)
	require.NoError(t, err)
	return membership
}

func (env *serviceTestEnv) createActiveGeneration(t *testing.T, orgID uint64, name string) *models.Generation {
	t.Helper()

	generation, err := env.generationService.CreateGeneration(CreateGenerationInput{
		OrganizationID: orgID,
		Name:           name,
		StartedAt:      time.Now(),
		IsActive:       true,
	})
	require.NoError(t, err)
	return generation
}

func (env *serviceTestEnv) createCycle(t *testing.T, generationID uint64, week int, start, end time.Time, issueURL string) *models.Cycle {
	t.Helper()

	cycle, err := env.generationService.CreateCycle(CreateCycleInput{
		GenerationID: generationID,
		Week:         week,
		StartDate:    start,
		EndDate:      end,
		IssueURL:     issueURL,
	})
	require.NoError(t, err)
	return cycle
}

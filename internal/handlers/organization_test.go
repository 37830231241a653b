package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/constants"
	"github.com/bloggang/writing-challenge-api/internal/database"
	"github.com/bloggang/writing-challenge-api/internal/dto"
	"github.com/bloggang/writing-challenge-api/internal/models"
	"github.com/bloggang/writing-challenge-api/internal/repository"
	"github.com/bloggang/writing-challenge-api/internal/services"
)

type organizationTestEnv struct {
	db         *gorm.DB
	handler    *OrganizationHandler
	orgService *services.OrganizationService
}

func setupOrganizationTestEnv(t *testing.T) organizationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Member{},
		&models.Organization{},
		&models.OrganizationMember{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	memberRepo := repository.NewMemberRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	orgService := services.NewOrganizationService(orgRepo, memberRepo)
	handler := NewOrganizationHandler(orgService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return organizationTestEnv{
		db:         db,
		handler:    handler,
		orgService: orgService,
	}
}

func orgTestContext(method, url string, body []byte, memberID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyMemberID, memberID)

	return c, w
}

func createTestOrgMember(t *testing.T, db *gorm.DB, name, githubUsername string) *models.Member {
	member := &models.Member{
		Name:           name,
		GithubUsername: &githubUsername,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func TestOrganizationHandler_CreateOrganization(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrgMember(t, env.db, "Owner", "owner")

	payload := map[string]string{"name": "Acme Writers"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPost, "/api/organizations", body, owner.ID)

	env.handler.CreateOrganization(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.OrganizationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Acme Writers", response.Name)
	require.Equal(t, "acme-writers", response.Slug)
}

func TestOrganizationHandler_CreateOrganization_SlugTaken(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrgMember(t, env.db, "Owner", "owner")
	_, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    "Acme Writers",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	payload := map[string]string{"name": "Acme Writers"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPost, "/api/organizations", body, owner.ID)

	env.handler.CreateOrganization(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestOrganizationHandler_JoinOrganization(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrgMember(t, env.db, "Owner", "owner")
	_, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    "Acme Writers",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	joiner := createTestOrgMember(t, env.db, "Joiner", "joiner")

	c, w := orgTestContext(http.MethodPost, "/api/organizations/acme-writers/join", nil, joiner.ID)
	c.Params = gin.Params{{Key: "slug", Value: "acme-writers"}}

	env.handler.JoinOrganization(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.OrganizationMemberDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.StatusPending, response.Status)
	require.Equal(t, models.RoleMember, response.Role)
}

func TestOrganizationHandler_JoinOrganization_UnknownSlug(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	joiner := createTestOrgMember(t, env.db, "Joiner", "joiner")

	c, w := orgTestContext(http.MethodPost, "/api/organizations/nope/join", nil, joiner.ID)
	c.Params = gin.Params{{Key: "slug", Value: "nope"}}

	env.handler.JoinOrganization(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrganizationHandler_ApproveMember(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrgMember(t, env.db, "Owner", "owner")
	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    "Acme Writers",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	joiner := createTestOrgMember(t, env.db, "Joiner", "joiner")
	_, err = env.orgService.RequestJoin(org.ID, joiner.ID)
	require.NoError(t, err)

	joinerID := strconv.FormatUint(joiner.ID, 10)
	c, w := orgTestContext(http.MethodPost, "/api/organizations/acme-writers/members/"+joinerID+"/approve", nil, owner.ID)
	c.Params = gin.Params{{Key: "slug", Value: "acme-writers"}, {Key: "member_id", Value: joinerID}}
	c.Set("organization", *org)

	env.handler.ApproveMember(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.OrganizationMemberDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.StatusApproved, response.Status)

	// Approving a second time conflicts.
	c2, w2 := orgTestContext(http.MethodPost, "/api/organizations/acme-writers/members/"+joinerID+"/approve", nil, owner.ID)
	c2.Params = gin.Params{{Key: "slug", Value: "acme-writers"}, {Key: "member_id", Value: joinerID}}
	c2.Set("organization", *org)

	env.handler.ApproveMember(c2)

	require.Equal(t, http.StatusConflict, w2.Code)
}

func TestOrganizationHandler_ChangeMemberRole(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrgMember(t, env.db, "Owner", "owner")
	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    "Acme Writers",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	joiner := createTestOrgMember(t, env.db, "Joiner", "joiner")
	_, err = env.orgService.RequestJoin(org.ID, joiner.ID)
	require.NoError(t, err)
	_, err = env.orgService.ApproveMember(org.ID, joiner.ID)
	require.NoError(t, err)

	payload := map[string]string{"role": "ADMIN"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	joinerID := strconv.FormatUint(joiner.ID, 10)
	c, w := orgTestContext(http.MethodPatch, "/api/organizations/acme-writers/members/"+joinerID+"/role", body, owner.ID)
	c.Params = gin.Params{{Key: "slug", Value: "acme-writers"}, {Key: "member_id", Value: joinerID}}
	c.Set("organization", *org)

	env.handler.ChangeMemberRole(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.OrganizationMemberDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.RoleAdmin, response.Role)
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bloggang/writing-challenge-api/internal/models"
)

const testWebhookURL = "https://discord.com/api/webhooks/123456789012345678/abcDEF_token-123"

type submissionFixture struct {
	env    *serviceTestEnv
	org    *models.Organization
	cycle  *models.Cycle
	writer *models.Member
}

func setupSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	env := setupServiceTestEnv(t)
	owner := env.createMember(t, "Alice", "alice")

	org, err := env.orgService.CreateOrganization(CreateOrganizationInput{
		Name:       "Acme Writers",
		WebhookURL: testWebhookURL,
		OwnerID:    owner.ID,
	})
	require.NoError(t, err)

	generation := env.createActiveGeneration(t, org.ID, "Season 1")

	now := time.Now()
	cycle := env.createCycle(t, generation.ID, 1, now.Add(-24*time.Hour), now.Add(6*24*time.Hour),
		"https://github.com/acme/challenge/issues/1")

	writer := env.createMember(t, "Bob", "bob")
	env.approveJoin(t, org.ID, writer.ID)

	return &submissionFixture{env: env, org: org, cycle: cycle, writer: writer}
}

func TestRecordSubmission(t *testing.T) {
	f := setupSubmissionFixture(t)

	result, err := f.env.submissionService.RecordSubmission(RecordSubmissionInput{
		GithubUsername: "bob",
		URL:            "https://blog.example.com/post-1",
		CommentID:      "1001",
		IssueRef:       f.cycle.IssueURL,
	})
	require.NoError(t, err)
	require.False(t, result.AlreadyRecorded)
	require.Equal(t, f.cycle.ID, result.Submission.CycleID)
	require.Equal(t, f.writer.ID, result.Submission.MemberID)
	require.Equal(t, "https://blog.example.com/post-1", result.Submission.URL)

	require.NotNil(t, result.Event)
	require.Equal(t, "Bob", result.Event.MemberName)
	require.Equal(t, "Week 1", result.Event.CycleLabel)
	require.Equal(t, "https://blog.example.com/post-1", result.Event.URL)
	require.Equal(t, testWebhookURL, result.WebhookURL)
}

func TestRecordSubmission_RedeliveredComment(t *testing.T) {
	f := setupSubmissionFixture(t)

	input := RecordSubmissionInput{
		GithubUsername: "bob",
		URL:            "https://blog.example.com/post-1",
		CommentID:      "1001",
		IssueRef:       f.cycle.IssueURL,
	}

	first, err := f.env.submissionService.RecordSubmission(input)
	require.NoError(t, err)

	second, err := f.env.submissionService.RecordSubmission(input)
	require.NoError(t, err)
	require.True(t, second.AlreadyRecorded)
	require.Equal(t, first.Submission.ID, second.Submission.ID)
	require.Nil(t, second.Event, "re-delivery must not emit a fresh event")

	var count int64
	require.NoError(t, f.env.db.Model(&models.Submission{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRecordSubmission_SecondLinkSameCycle(t *testing.T) {
	f := setupSubmissionFixture(t)

	first, err := f.env.submissionService.RecordSubmission(RecordSubmissionInput{
		GithubUsername: "bob",
		URL:            "https://blog.example.com/post-1",
		CommentID:      "1001",
		IssueRef:       f.cycle.IssueURL,
	})
	require.NoError(t, err)

	// A second comment in the same cycle keeps the first submission.
	second, err := f.env.submissionService.RecordSubmission(RecordSubmissionInput{
		GithubUsername: "bob",
		URL:            "https://blog.example.com/post-2",
		CommentID:      "1002",
		IssueRef:       f.cycle.IssueURL,
	})
	require.NoError(t, err)
	require.True(t, second.AlreadyRecorded)
	require.Equal(t, first.Submission.ID, second.Submission.ID)
	require.Equal(t, "https://blog.example.com/post-1", second.Submission.URL)
}

func TestRecordSubmission_UnknownIssue(t *testing.T) {
	f := setupSubmissionFixture(t)

	_, err := f.env.submissionService.RecordSubmission(RecordSubmissionInput{
		GithubUsername: "bob",
		URL:            "https://blog.example.com/post-1",
		CommentID:      "1001",
		IssueRef:       "https://github.com/acme/challenge/issues/999",
	})
	require.ErrorIs(t, err, ErrCycleNotFoundForIssue)
}

func TestRecordSubmission_UnknownGithubUsername(t *testing.T) {
	f := setupSubmissionFixture(t)

	_, err := f.env.submissionService.RecordSubmission(RecordSubmissionInput{
		GithubUsername: "stranger",
		URL:            "https://blog.example.com/post-1",
		CommentID:      "1001",
		IssueRef:       f.cycle.IssueURL,
	})
	require.ErrorIs(t, err, ErrUnknownGithubUsername)
}

func TestRecordSubmission_MissingURL(t *testing.T) {
	f := setupSubmissionFixture(t)

	_, err := f.env.submissionService.RecordSubmission(RecordSubmissionInput{
		GithubUsername: "bob",
		URL:            "  ",
		CommentID:      "1001",
		IssueRef:       f.cycle.IssueURL,
	})
	require.ErrorIs(t, err, ErrSubmissionURLMissing)
}

package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bloggang/writing-challenge-api/internal/dto"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
	"github.com/bloggang/writing-challenge-api/internal/services"
	"github.com/bloggang/writing-challenge-api/internal/utils"
)

var (
	// First http(s) link in a comment body is taken as the blog URL.
	blogURLPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

	// Issue titles that open a cycle: "Week 3", "week3", "3주차".
	weekTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)week\s*([0-9]{1,2})`),
		regexp.MustCompile(`([0-9]{1,2})주차`),
	}
)

// WebhookHandler turns GitHub events into domain commands. Parsing and
// signature checking stay here; the services only ever see structured
// records.
type WebhookHandler struct {
	submissionService *services.SubmissionService
	generationService *services.GenerationService
	orgService        *services.OrganizationService
	notifier          services.Notifier
	secret            string
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(
	submissionService *services.SubmissionService,
	generationService *services.GenerationService,
	orgService *services.OrganizationService,
	notifier services.Notifier,
	secret string,
) *WebhookHandler {
	return &WebhookHandler{
		submissionService: submissionService,
		generationService: generationService,
		orgService:        orgService,
		notifier:          notifier,
		secret:            secret,
	}
}

type githubWebhookPayload struct {
	Action string `json:"action"`
	Issue  struct {
		Title     string    `json:"title"`
		HTMLURL   string    `json:"html_url"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"issue"`
	Comment struct {
		ID   int64  `json:"id"`
		Body string `json:"body"`
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"comment"`
	Repository struct {
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
}

// HandleGithubEvent processes issue_comment and issues events.
func (h *WebhookHandler) HandleGithubEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.BadRequest(c, "Failed to read request body")
		return
	}

	if !h.verifySignature(body, c.GetHeader("X-Hub-Signature-256")) {
		apperrors.Unauthorized(c, "Invalid webhook signature")
		return
	}

	var payload githubWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		apperrors.BadRequest(c, "Invalid webhook payload")
		return
	}

	switch c.GetHeader("X-GitHub-Event") {
	case "issue_comment":
		if payload.Action != "created" {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		h.handleComment(c, payload)
	case "issues":
		if payload.Action != "opened" {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		h.handleIssueOpened(c, payload)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

// handleComment records the submission carried by an issue comment.
// Re-delivery of the same comment event answers success, not an error.
func (h *WebhookHandler) handleComment(c *gin.Context, payload githubWebhookPayload) {
	url := blogURLPattern.FindString(payload.Comment.Body)

	result, err := h.submissionService.RecordSubmission(services.RecordSubmissionInput{
		GithubUsername: payload.Comment.User.Login,
		URL:            url,
		CommentID:      strconv.FormatInt(payload.Comment.ID, 10),
		IssueRef:       payload.Issue.HTMLURL,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if result.AlreadyRecorded {
		c.JSON(http.StatusOK, gin.H{
			"status":     "already_recorded",
			"submission": dto.ToSubmissionDTO(*result.Submission),
		})
		return
	}

	if result.Event != nil {
		if err := h.notifier.SubmissionRecorded(c.Request.Context(), result.WebhookURL, *result.Event); err != nil {
			log.Printf("failed to dispatch submission notification: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "recorded",
		"submission": dto.ToSubmissionDTO(*result.Submission),
	})
}

// handleIssueOpened creates the week's cycle when an issue matching the week
// pattern appears in the organization's repository.
func (h *WebhookHandler) handleIssueOpened(c *gin.Context, payload githubWebhookPayload) {
	week, ok := parseWeekTitle(payload.Issue.Title)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	org, err := h.orgService.GetOrganizationBySlug(utils.Slugify(payload.Repository.Owner.Login))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	generation, err := h.generationService.GetActiveGeneration(org.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	start := payload.Issue.CreatedAt
	if start.IsZero() {
		start = time.Now()
	}

	cycle, err := h.generationService.CreateCycle(services.CreateCycleInput{
		GenerationID: generation.ID,
		Week:         week,
		StartDate:    start,
		EndDate:      start.Add(7 * 24 * time.Hour),
		IssueURL:     payload.Issue.HTMLURL,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "cycle_created",
		"cycle":  dto.ToCycleDTO(*cycle),
	})
}

// verifySignature checks the GitHub HMAC-SHA256 signature. With no secret
// configured the check is skipped (local development).
func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if h.secret == "" {
		return true
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func parseWeekTitle(title string) (int, bool) {
	for _, pattern := range weekTitlePatterns {
		if match := pattern.FindStringSubmatch(title); match != nil {
			week, err := strconv.Atoi(match[1])
			if err == nil {
				return week, true
			}
		}
	}
	return 0, false
}

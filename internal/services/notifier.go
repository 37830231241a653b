package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bloggang/writing-challenge-api/internal/models"
)

// Notifier delivers notifications for an organization. The services depend
// on this capability, not on a delivery mechanism; dispatch is always
// decided by the caller, never inside an aggregate.
type Notifier interface {
	SubmissionRecorded(ctx context.Context, webhookURL string, event models.SubmissionRecorded) error
	Reminder(ctx context.Context, webhookURL string, target ReminderTarget) error
	StatusSnapshot(ctx context.Context, webhookURL string, status CycleStatusResult) error
}

// DiscordNotifier posts messages to an organization's Discord webhook.
type DiscordNotifier struct {
	client *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier() *DiscordNotifier {
	return &DiscordNotifier{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SubmissionRecorded announces a new submission.
func (n *DiscordNotifier) SubmissionRecorded(ctx context.Context, webhookURL string, event models.SubmissionRecorded) error {
	content := fmt.Sprintf("%s submitted a post for %s: %s", event.MemberName, event.CycleLabel, event.URL)
	return n.post(ctx, webhookURL, content)
}

// Reminder nudges the members who have not submitted yet.
func (n *DiscordNotifier) Reminder(ctx context.Context, webhookURL string, target ReminderTarget) error {
	names := make([]string, len(target.NotSubmitted))
	for i, entry := range target.NotSubmitted {
		names[i] = entry.Name
	}

	content := fmt.Sprintf("%s closes at %s. Still waiting on: %s",
		target.Label,
		target.Deadline.Format(time.RFC3339),
		strings.Join(names, ", "),
	)
	return n.post(ctx, webhookURL, content)
}

// StatusSnapshot posts the full submitted / not-submitted breakdown.
func (n *DiscordNotifier) StatusSnapshot(ctx context.Context, webhookURL string, status CycleStatusResult) error {
	submitted := make([]string, len(status.Submitted))
	for i, entry := range status.Submitted {
		submitted[i] = entry.Name
	}
	notSubmitted := make([]string, len(status.NotSubmitted))
	for i, entry := range status.NotSubmitted {
		notSubmitted[i] = entry.Name
	}

	content := fmt.Sprintf("%s (deadline %s)\nSubmitted (%d): %s\nNot submitted (%d): %s",
		status.Label,
		status.Deadline.Format(time.RFC3339),
		status.Summary.Submitted,
		strings.Join(submitted, ", "),
		status.Summary.NotSubmitted,
		strings.Join(notSubmitted, ", "),
	)
	return n.post(ctx, webhookURL, content)
}

func (n *DiscordNotifier) post(ctx context.Context, webhookURL, content string) error {
	if webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery failed with status %d", resp.StatusCode)
	}
	return nil
}

// NoopNotifier discards notifications; used when an organization has no
// webhook configured and in tests.
type NoopNotifier struct{}

func (NoopNotifier) SubmissionRecorded(context.Context, string, models.SubmissionRecorded) error {
	return nil
}

func (NoopNotifier) Reminder(context.Context, string, ReminderTarget) error {
	return nil
}

func (NoopNotifier) StatusSnapshot(context.Context, string, CycleStatusResult) error {
	return nil
}

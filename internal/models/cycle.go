package models

import (
	"fmt"
	"time"

	"github.com/bloggang/writing-challenge-api/internal/constants"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
)

type Cycle struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	GenerationID uint64    `gorm:"not null;uniqueIndex:idx_cycles_generation_week" json:"generation_id"`
	Week         int       `gorm:"not null;uniqueIndex:idx_cycles_generation_week" json:"week"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null;index" json:"end_date"`
	IssueURL     string    `gorm:"type:varchar(255);index" json:"issue_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Generation  Generation   `gorm:"foreignKey:GenerationID" json:"generation,omitempty"`
	Submissions []Submission `gorm:"foreignKey:CycleID" json:"submissions,omitempty"`
}

// NewCycle builds a validated cycle.
func NewCycle(generationID uint64, week int, startDate, endDate time.Time, issueURL string) (*Cycle, error) {
	if week < constants.MinCycleWeek || week > constants.MaxCycleWeek {
		return nil, apperrors.Validation("week must be between 1 and 52")
	}
	if !startDate.Before(endDate) {
		return nil, apperrors.Validation("cycle start date must be before end date")
	}
	return &Cycle{
		GenerationID: generationID,
		Week:         week,
		StartDate:    startDate,
		EndDate:      endDate,
		IssueURL:     issueURL,
	}, nil
}

// Label returns the human-readable cycle name, e.g. "Week 3".
func (c *Cycle) Label() string {
	return fmt.Sprintf("Week %d", c.Week)
}

// Contains reports whether the cycle's date range contains the given time.
func (c *Cycle) Contains(t time.Time) bool {
	return !t.Before(c.StartDate) && t.Before(c.EndDate)
}

// HoursLeft returns the whole hours remaining until the deadline. Negative
// values mean the deadline has passed.
func (c *Cycle) HoursLeft(now time.Time) int {
	hours := c.EndDate.Sub(now).Hours()
	return int(floorHours(hours))
}

// DeadlineWithin reports whether the deadline falls in (now, now+window].
func (c *Cycle) DeadlineWithin(now time.Time, window time.Duration) bool {
	return c.EndDate.After(now) && !c.EndDate.After(now.Add(window))
}

func floorHours(h float64) float64 {
	floored := float64(int(h))
	if h < 0 && h != floored {
		return floored - 1
	}
	return floored
}

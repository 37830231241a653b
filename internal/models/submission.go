package models

import (
	"time"
)

type Submission struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	CycleID     uint64    `gorm:"not null;uniqueIndex:idx_submissions_cycle_member" json:"cycle_id"`
	MemberID    uint64    `gorm:"not null;uniqueIndex:idx_submissions_cycle_member" json:"member_id"`
	URL         string    `gorm:"type:varchar(500);not null" json:"url"`
	CommentID   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"comment_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Cycle  Cycle  `gorm:"foreignKey:CycleID" json:"cycle,omitempty"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

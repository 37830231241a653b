package models

import (
	"time"

	"gorm.io/gorm"
)

type GenerationMember struct {
	GenerationID uint64         `gorm:"primarykey" json:"generation_id"`
	MemberID     uint64         `gorm:"primarykey" json:"member_id"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Generation Generation `gorm:"foreignKey:GenerationID" json:"generation,omitempty"`
	Member     Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

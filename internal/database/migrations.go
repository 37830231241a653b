package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/bloggang/writing-challenge-api/internal/models"
)

// AddIndexes adds lookup indexes that AutoMigrate's tag-declared unique
// indexes do not cover.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		{&models.OrganizationMember{}, "organization_members", "idx_org_members_status", "organization_id, status"},
		{&models.Generation{}, "generations", "idx_generations_org_active", "organization_id, is_active"},
		{&models.Submission{}, "submissions", "idx_submissions_cycle_id", "cycle_id"},
		{&models.Submission{}, "submissions", "idx_submissions_member_id", "member_id"},
		{&models.GenerationMember{}, "generation_members", "idx_generation_members_member_id", "member_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}

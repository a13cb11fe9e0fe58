package database

import (
	"log"

	"gorm.io/gorm"

	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
)

// Migrate creates or updates the landing page tables. gen_random_uuid()
// needs pgcrypto on PostgreSQL < 13.
func Migrate(db *gorm.DB) error {
	log.Println("[INFO] Running auto-migration...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto extension: %v", err)
	}
	if err := db.AutoMigrate(
		&model.LandingPageModel{},
		&model.FormSubmissionModel{},
	); err != nil {
		return err
	}
	log.Println("[INFO] Auto-migration done")
	return nil
}

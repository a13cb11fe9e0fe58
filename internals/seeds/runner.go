package seeds

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	landingPages "eventpages_backend/internals/seeds/landing_pages"
)

// RunAllSeeds loads every seed set for orgID. An empty file means the
// bundled landing page data.
func RunAllSeeds(db *gorm.DB, orgID uuid.UUID, file string) {
	if file == "" {
		file = landingPages.DefaultFile
	}

	//* Landing pages
	landingPages.SeedLandingPagesFromYAML(db, orgID, file)
}

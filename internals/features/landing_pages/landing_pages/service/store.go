package service

import (
	"context"

	"github.com/google/uuid"

	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
)

// Store is the persistence the service needs. Implementations return
// ErrLandingPageNotFound for a missing page and ErrSlugTaken when the
// (organization, slug) unique constraint fires.
type Store interface {
	ListPages(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]model.LandingPageModel, int64, error)
	FindPage(ctx context.Context, orgID, id uuid.UUID) (*model.LandingPageModel, error)
	// FindPublishedBySlug returns the oldest published page with slug.
	FindPublishedBySlug(ctx context.Context, slug string) (*model.LandingPageModel, error)
	// SlugExists ignores the page excludeID (uuid.Nil to ignore none).
	SlugExists(ctx context.Context, orgID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
	CreatePage(ctx context.Context, m *model.LandingPageModel) error
	SavePage(ctx context.Context, m *model.LandingPageModel) error
	DeletePage(ctx context.Context, orgID, id uuid.UUID) error

	CreateSubmission(ctx context.Context, s *model.FormSubmissionModel) error
	// ListSubmissions is newest first.
	ListSubmissions(ctx context.Context, pageID uuid.UUID, offset, limit int) ([]model.FormSubmissionModel, int64, error)
	// CountAnswers returns, per field id, how many submissions answered it,
	// plus the submission total.
	CountAnswers(ctx context.Context, pageID uuid.UUID) (map[string]int64, int64, error)
}
